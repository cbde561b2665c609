package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tasanda/ceu"
)

var _ ceu.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds course and pagination links on provider listing pages
// using the provider's configured CSS selectors.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses html and returns links on the provider's domains.
//
// Course links come from the course_links selector, or its fallback when
// the primary selector finds nothing. Pagination links come from the
// pagination selectors. When no course link selector is configured every
// anchor on the page is returned at fallback priority.
// Links are deduplicated by URL, keeping the highest priority version.
func (e *LinkExtractor) ExtractLinks(html, baseURL string, provider *ceu.Provider) ([]ceu.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, ceu.Errorf(ceu.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ceu.Errorf(ceu.EINVALID, "failed to parse HTML: %v", err)
	}

	c := &linkCollector{base: base, provider: provider, seen: make(map[string]int)}

	courses := provider.Selectors.CourseLinks
	switch {
	case courses.CSS != "" || courses.FallbackCSS != "":
		if c.collect(doc, courses.CSS, ceu.PriorityCourse) == 0 {
			c.collect(doc, courses.FallbackCSS, ceu.PriorityCourse)
		}
	default:
		c.collect(doc, "a[href]", ceu.PriorityFallback)
	}

	pages := provider.Selectors.Pagination
	if c.collect(doc, pages.CSS, ceu.PriorityPagination) == 0 {
		c.collect(doc, pages.FallbackCSS, ceu.PriorityPagination)
	}

	return c.links, nil
}

// linkCollector accumulates deduplicated links in document order.
type linkCollector struct {
	base     *url.URL
	provider *ceu.Provider
	seen     map[string]int
	links    []ceu.DiscoveredLink
}

// collect adds the links matched by selector and returns how many hrefs it
// found, including duplicates and off-domain links.
func (c *linkCollector) collect(doc *goquery.Document, selector string, priority ceu.LinkPriority) int {
	css := CSSSelector(selector)
	if css == "" {
		return 0
	}

	found := 0
	doc.Find(css).Each(func(_ int, sel *goquery.Selection) {
		anchors := sel
		if !sel.Is("a") {
			anchors = sel.Find("a[href]")
		}
		anchors.Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				return
			}
			found++
			c.add(href, strings.TrimSpace(a.Text()), priority)
		})
	})
	return found
}

func (c *linkCollector) add(href, text string, priority ceu.LinkPriority) {
	href = strings.TrimSpace(href)
	if isNonHTTPLink(href) {
		return
	}
	resolved := resolveURL(c.base, href)
	if resolved == "" {
		return
	}
	u, err := url.Parse(resolved)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return
	}
	if !c.provider.AllowedHost(u.Host) {
		return
	}

	if idx, ok := c.seen[resolved]; ok {
		if priority > c.links[idx].Priority {
			c.links[idx].Priority = priority
			c.links[idx].Text = text
		}
		return
	}
	c.seen[resolved] = len(c.links)
	c.links = append(c.links, ceu.DiscoveredLink{URL: resolved, Priority: priority, Text: text})
}

// CSSSelector strips a trailing "::attr(href)" or "::text" pseudo-element
// from a configured selector, leaving plain CSS.
func CSSSelector(selector string) string {
	selector = strings.TrimSpace(selector)
	if i := strings.Index(selector, "::"); i != -1 {
		selector = strings.TrimSpace(selector[:i])
	}
	return selector
}

// resolveURL resolves a relative URL against a base URL.
// The fragment is dropped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// isNonHTTPLink reports whether href uses a scheme that is never crawled.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"#", "javascript:", "mailto:", "tel:", "data:", "ftp:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
