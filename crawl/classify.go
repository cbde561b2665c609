package crawl

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/tasanda/ceu"
)

// GlobalSkipPatterns are URL substrings never followed for any provider.
var GlobalSkipPatterns = []string{
	"/cart", "/checkout", "/account", "/login", "/register",
	"/about", "/contact", "/privacy", "/terms", "/faq",
	"/blog/", "/news/", "/press/", ".pdf", ".jpg", ".png",
	"javascript:", "mailto:", "tel:", "/signup", "/password",
}

// regexMarkers identify configured patterns meant as regular expressions.
// Anything else is matched literally.
var regexMarkers = []string{`\d`, `\w`, `\s`, "+", "*", "?", "^", "$"}

// Classifier assigns page types to provider URLs and decides which URLs to
// follow. Matching is case-insensitive.
type Classifier struct {
	courseDetail []*regexp.Regexp
	listing      []*regexp.Regexp
	skip         []*regexp.Regexp
	baseDomain   string
}

// NewClassifier compiles the URL patterns of p.
func NewClassifier(p *ceu.Provider) *Classifier {
	return &Classifier{
		courseDetail: compilePatterns(p.Crawl.Patterns.CourseDetail),
		listing:      compilePatterns(p.Crawl.Patterns.Listing),
		skip:         compilePatterns(p.Crawl.Patterns.Skip),
		baseDomain:   p.BaseDomain(),
	}
}

// compilePatterns compiles each pattern, falling back to a literal match
// when it does not compile.
func compilePatterns(patterns []string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, p := range patterns {
		expr := regexp.QuoteMeta(p)
		if looksLikeRegex(p) {
			expr = p
		}
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(p))
		}
		out = append(out, re)
	}
	return out
}

func looksLikeRegex(p string) bool {
	for _, m := range regexMarkers {
		if strings.Contains(p, m) {
			return true
		}
	}
	return false
}

// Classify returns the page type of rawURL: course_detail or listing when a
// configured pattern matches, homepage for the root of the base domain,
// otherwise unknown.
func (c *Classifier) Classify(rawURL string) ceu.PageType {
	lower := strings.ToLower(rawURL)
	if matchAny(c.courseDetail, lower) {
		return ceu.PageTypeCourseDetail
	}
	if matchAny(c.listing, lower) {
		return ceu.PageTypeListing
	}

	u, err := url.Parse(rawURL)
	if err == nil && strings.EqualFold(u.Host, c.baseDomain) && (u.Path == "" || u.Path == "/") {
		return ceu.PageTypeHomepage
	}
	return ceu.PageTypeUnknown
}

// ShouldFollow reports whether rawURL passes the provider skip patterns and
// the global skip list.
func (c *Classifier) ShouldFollow(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	if matchAny(c.skip, lower) {
		return false
	}
	for _, p := range GlobalSkipPatterns {
		if strings.Contains(lower, p) {
			return false
		}
	}
	return true
}

// FollowsLinks reports whether links found on a page of type pt are followed.
func FollowsLinks(pt ceu.PageType) bool {
	return pt == ceu.PageTypeListing || pt == ceu.PageTypeHomepage
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
