package ceu

// LinkPriority represents crawl priority (higher = more important).
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PriorityFallback   LinkPriority = 10
	PriorityPagination LinkPriority = 50
	PriorityCourse     LinkPriority = 100
	PriorityStart      LinkPriority = 110
)

// DiscoveredLink represents a URL with priority and crawl metadata.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Depth    int
	// Referrer is the page the link was found on.
	Referrer string
}

// LinkExtractor finds the links worth following on a provider page.
type LinkExtractor interface {
	// ExtractLinks returns links found in html resolved against baseURL,
	// restricted to the provider's domains.
	ExtractLinks(html, baseURL string, provider *Provider) ([]DiscoveredLink, error)
}

// ContentPreview is a readable rendition of a page's main content.
type ContentPreview struct {
	Title    string
	Markdown string
}

// ContentPreviewer renders a page's main content as Markdown.
type ContentPreviewer interface {
	Preview(html string) (*ContentPreview, error)
}
