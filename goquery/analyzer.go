package goquery

import (
	"cmp"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tasanda/ceu"
)

var _ ceu.PageAnalyzer = (*Analyzer)(nil)

// Analysis limits.
const (
	maxHeadingsPerLevel = 10
	maxInternalLinks    = 100
	maxExternalLinks    = 50
	maxCourseCandidates = 50
	maxClasses          = 30
	maxIDs              = 30
)

// courseURLPatterns match URLs that usually lead to a single course.
var courseURLPatterns = compileAll(
	`/courses?/`, `/products?/`, `/class(es)?/`, `/training/`, `/webinars?/`,
	`/seminars?/`, `/programs?/`, `/workshops?/`, `/certification/`, `/ceu/`,
	`/ce/`, `/continuing-education/`, `/item/`, `/sales/`, `/detail/`, `/\d{4,}`,
)

// listingURLPatterns match URLs of catalog and search pages.
var listingURLPatterns = compileAll(
	`/courses?$`, `/catalog`, `/search`, `/browse`, `/categories`, `/store`,
	`/products?$`, `/all-`, `/list`,
)

// explorerSkip lists URL substrings that are never course pages.
var explorerSkip = []string{
	"/cart", "/checkout", "/login", "/register", "/account",
	"/signup", "/password", "/forgot", "/auth",
	"/about", "/contact", "/privacy", "/terms", "/faq",
	"/blog", "/news", "/press", "/careers",
	".pdf", ".jpg", ".png", ".gif", ".css", ".js",
	"javascript:", "mailto:", "tel:",
}

// commonCourseSelectors are course-card selectors seen across providers.
var commonCourseSelectors = []string{
	".course a",
	".course-card a",
	".course-item a",
	".product a",
	".product-card a",
	".item a",
	".training a",
	".webinar a",
	"article.course a",
	`[class*="course"] a`,
	`[class*="product"] a`,
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile("(?i)" + p)
	}
	return res
}

// Analyzer inspects listing pages to help write provider configurations.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze summarizes the structure of the page at pageURL.
func (a *Analyzer) Analyze(html, pageURL string) (*ceu.PageAnalysis, error) {
	base, doc, err := parsePage(html, pageURL)
	if err != nil {
		return nil, err
	}

	analysis := &ceu.PageAnalysis{
		URL:              pageURL,
		Title:            strings.TrimSpace(doc.Find("title").First().Text()),
		Headings:         make(map[string][]string),
		InternalLinks:    []string{},
		ExternalLinks:    []string{},
		CourseCandidates: []string{},
		Forms:            doc.Find("form").Length(),
		Images:           doc.Find("img").Length(),
	}

	for _, level := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		var texts []string
		doc.Find(level).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			texts = append(texts, strings.TrimSpace(s.Text()))
			return len(texts) < maxHeadingsPerLevel
		})
		if len(texts) > 0 {
			analysis.Headings[level] = texts
		}
	}

	seen := make(map[string]bool)
	anchors := doc.Find("a[href]")
	analysis.LinkCount = anchors.Length()
	anchors.Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || isNonHTTPLink(href) {
			return
		}
		abs := resolveURL(base, href)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true

		u, err := url.Parse(abs)
		if err != nil {
			return
		}
		if strings.Contains(u.Host, base.Host) {
			appendCapped(&analysis.InternalLinks, abs, maxInternalLinks)
			if likelyCourseURL(abs) {
				appendCapped(&analysis.CourseCandidates, abs, maxCourseCandidates)
			}
		} else {
			appendCapped(&analysis.ExternalLinks, abs, maxExternalLinks)
		}
	})

	analysis.CSSClasses = topClasses(doc, maxClasses)
	analysis.IDs = pageIDs(doc, maxIDs)
	analysis.Selectors = matchingSelectors(doc)

	return analysis, nil
}

// SuggestProvider drafts a provider configuration from the listing page at
// pageURL. An empty name is derived from the host.
func (a *Analyzer) SuggestProvider(html, pageURL, name string) (*ceu.Provider, error) {
	base, doc, err := parsePage(html, pageURL)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = nameFromHost(base.Host)
	}

	p := ceu.NewProvider(name)
	p.DisplayName = strings.ToUpper(name)
	p.Active = true
	p.Domains = []ceu.Domain{{BaseURL: base.Scheme + "://" + base.Host, Primary: true}}
	p.Crawl.StartURLs = []string{pageURL}
	p.Crawl.Patterns.Listing = listingPatterns(base)
	p.Crawl.Patterns.CourseDetail = coursePatterns(doc, base)
	p.Crawl.Patterns.Skip = []string{"/cart", "/checkout", "/login", "/register", "/account"}

	selectors := matchingSelectors(doc)
	p.Selectors.CourseLinks.CSS = "a[href*='/courses/']::attr(href)"
	if len(selectors) > 0 {
		p.Selectors.CourseLinks.CSS = selectors[0].Selector + "::attr(href)"
	}
	if len(selectors) > 1 {
		p.Selectors.CourseLinks.FallbackCSS = selectors[1].Selector + "::attr(href)"
	}
	p.Selectors.Pagination.CSS = ".pagination a::attr(href)"

	return p, nil
}

func parsePage(html, pageURL string) (*url.URL, *goquery.Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return nil, nil, ceu.Errorf(ceu.EINVALID, "invalid page URL %q", pageURL)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, ceu.Errorf(ceu.EINVALID, "failed to parse HTML: %v", err)
	}
	return base, doc, nil
}

func appendCapped(list *[]string, s string, max int) {
	if len(*list) < max {
		*list = append(*list, s)
	}
}

func likelyCourseURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, skip := range explorerSkip {
		if strings.Contains(lower, skip) {
			return false
		}
	}
	for _, re := range courseURLPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// topClasses returns the most frequent class names, most frequent first.
// Ties keep document order.
func topClasses(doc *goquery.Document, n int) []string {
	counts := make(map[string]int)
	var order []string
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		for _, c := range strings.Fields(class) {
			if counts[c] == 0 {
				order = append(order, c)
			}
			counts[c]++
		}
	})
	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

func pageIDs(doc *goquery.Document, n int) []string {
	ids := []string{}
	doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if id, _ := s.Attr("id"); id != "" {
			ids = append(ids, id)
		}
		return len(ids) < n
	})
	return ids
}

// matchingSelectors returns the common course selectors that match at
// least one link on the page, in preference order.
func matchingSelectors(doc *goquery.Document) []ceu.SelectorMatch {
	var matches []ceu.SelectorMatch
	for _, sel := range commonCourseSelectors {
		if n := doc.Find(sel).Filter("[href]").Length(); n > 0 {
			matches = append(matches, ceu.SelectorMatch{Selector: sel, Count: n})
		}
	}
	return matches
}

// nameFromHost turns "www.acme-ce.com" into "acme-ce".
func nameFromHost(host string) string {
	parts := strings.Split(strings.ToLower(host), ".")
	if len(parts) > 1 && slices.Contains([]string{"www", "courses", "ondemand", "training"}, parts[0]) {
		return parts[1]
	}
	return parts[0]
}

// listingPatterns suggests listing patterns from the page's own URL.
func listingPatterns(base *url.URL) []string {
	for _, re := range listingURLPatterns {
		if m := re.FindString(base.Path); m != "" {
			return []string{m}
		}
	}
	if base.Path != "" && base.Path != "/" {
		return []string{base.Path}
	}
	return nil
}

// coursePatterns suggests course detail patterns from the course-like
// links on the page.
func coursePatterns(doc *goquery.Document, base *url.URL) []string {
	var patterns []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if len(patterns) >= 5 {
			return
		}
		href, _ := s.Attr("href")
		abs := resolveURL(base, strings.TrimSpace(href))
		u, err := url.Parse(abs)
		if err != nil || !strings.Contains(u.Host, base.Host) || !likelyCourseURL(abs) {
			return
		}
		for _, re := range courseURLPatterns {
			m := re.FindString(u.Path)
			if m == "" || !strings.HasSuffix(m, "/") {
				continue
			}
			if p := strings.ToLower(m); !seen[p] {
				seen[p] = true
				patterns = append(patterns, p)
			}
			break
		}
	})
	return patterns
}
