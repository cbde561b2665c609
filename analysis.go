package ceu

// PageAnalysis summarizes a page's structure to help write a provider
// configuration for a new site.
type PageAnalysis struct {
	URL   string `json:"url"`
	Title string `json:"title"`

	// Headings maps "h1".."h6" to at most ten heading texts each.
	Headings map[string][]string `json:"headings"`

	LinkCount        int      `json:"linkCount"`
	InternalLinks    []string `json:"internalLinks"`
	ExternalLinks    []string `json:"externalLinks"`
	CourseCandidates []string `json:"courseCandidates"`

	// CSSClasses holds the most frequent class names, most frequent first.
	CSSClasses []string `json:"cssClasses"`
	IDs        []string `json:"ids"`

	Forms  int `json:"forms"`
	Images int `json:"images"`

	// Selectors lists common course-card selectors that matched links.
	Selectors []SelectorMatch `json:"selectors"`
}

// SelectorMatch is a CSS selector and the number of links it matched.
type SelectorMatch struct {
	Selector string `json:"selector"`
	Count    int    `json:"count"`
}

// PageAnalyzer inspects a page to support provider configuration.
type PageAnalyzer interface {
	Analyze(html, url string) (*PageAnalysis, error)

	// SuggestProvider drafts a provider configuration from a listing page.
	// An empty name is derived from the URL's host.
	SuggestProvider(html, url, name string) (*Provider, error)
}
