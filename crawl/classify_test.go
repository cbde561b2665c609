package crawl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/crawl"
)

func testProvider() *ceu.Provider {
	p := ceu.NewProvider("acme")
	p.Active = true
	p.Domains = []ceu.Domain{
		{BaseURL: "https://www.acme-ce.com", Primary: true},
		{BaseURL: "https://learn.acme-ce.com"},
	}
	p.Crawl.StartURLs = []string{"https://www.acme-ce.com/"}
	p.Crawl.DownloadDelay = 0
	p.Crawl.Patterns = ceu.URLPatterns{
		CourseDetail: []string{`/course/\d+`, "/product/"},
		Listing:      []string{"/courses", `/catalog\?page=\d+`},
		Skip:         []string{"/webinar-archive", `\.zip$`},
	}
	return p
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := crawl.NewClassifier(testProvider())

	tests := []struct {
		url  string
		want ceu.PageType
	}{
		{"https://www.acme-ce.com/course/123", ceu.PageTypeCourseDetail},
		{"https://www.acme-ce.com/COURSE/9", ceu.PageTypeCourseDetail},
		{"https://www.acme-ce.com/product/ethics-101", ceu.PageTypeCourseDetail},
		{"https://www.acme-ce.com/courses", ceu.PageTypeListing},
		{"https://www.acme-ce.com/catalog?page=3", ceu.PageTypeListing},
		{"https://www.acme-ce.com/", ceu.PageTypeHomepage},
		{"https://www.acme-ce.com", ceu.PageTypeHomepage},
		{"https://learn.acme-ce.com/", ceu.PageTypeUnknown},
		{"https://www.acme-ce.com/catalog", ceu.PageTypeUnknown},
		{"https://www.acme-ce.com/course/intro", ceu.PageTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Classify(tt.url))
		})
	}
}

func TestClassifier_Classify_prefers_course_detail_over_listing(t *testing.T) {
	t.Parallel()

	c := crawl.NewClassifier(testProvider())

	// Matches both "/courses" and "/course/\d+".
	assert.Equal(t, ceu.PageTypeCourseDetail, c.Classify("https://www.acme-ce.com/courses/course/42"))
}

func TestClassifier_literal_patterns_are_escaped(t *testing.T) {
	t.Parallel()

	p := testProvider()
	p.Crawl.Patterns.Listing = []string{"/catalog.html"}
	c := crawl.NewClassifier(p)

	assert.Equal(t, ceu.PageTypeListing, c.Classify("https://www.acme-ce.com/catalog.html"))
	assert.Equal(t, ceu.PageTypeUnknown, c.Classify("https://www.acme-ce.com/catalogXhtml"))
}

func TestClassifier_invalid_regex_falls_back_to_literal(t *testing.T) {
	t.Parallel()

	p := testProvider()
	p.Crawl.Patterns.CourseDetail = []string{"/item(+"}
	c := crawl.NewClassifier(p)

	assert.Equal(t, ceu.PageTypeCourseDetail, c.Classify("https://www.acme-ce.com/item(+/1"))
}

func TestClassifier_ShouldFollow(t *testing.T) {
	t.Parallel()

	c := crawl.NewClassifier(testProvider())

	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.acme-ce.com/course/1", true},
		{"https://www.acme-ce.com/courses?page=2", true},
		{"https://www.acme-ce.com/webinar-archive/2020", false},
		{"https://www.acme-ce.com/files/all.zip", false},
		{"https://www.acme-ce.com/cart", false},
		{"https://www.acme-ce.com/Account/Settings", false},
		{"https://www.acme-ce.com/blog/new-courses", false},
		{"https://www.acme-ce.com/syllabus.PDF", false},
		{"mailto:info@acme-ce.com", false},
		{"https://www.acme-ce.com/signup", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.ShouldFollow(tt.url))
		})
	}
}

func TestFollowsLinks(t *testing.T) {
	t.Parallel()

	assert.True(t, crawl.FollowsLinks(ceu.PageTypeListing))
	assert.True(t, crawl.FollowsLinks(ceu.PageTypeHomepage))
	assert.False(t, crawl.FollowsLinks(ceu.PageTypeCourseDetail))
	assert.False(t, crawl.FollowsLinks(ceu.PageTypeUnknown))
}
