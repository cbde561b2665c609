package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/goquery"
)

const catalogHTML = `<!DOCTYPE html>
<html>
<head><title>Course Catalog | Acme CE</title></head>
<body>
<header id="top"><a href="/cart">Cart</a><a href="/about">About</a></header>
<h1>Continuing Education Courses</h1>
<h2>Ethics</h2>
<h2>Supervision</h2>
<form id="search"><input name="q"></form>
<div class="course-card featured"><img src="a.png"><a href="/course/ethics-101">Ethics 101</a></div>
<div class="course-card"><a href="/course/supervision">Supervision</a></div>
<div class="course-card"><a href="/products/trauma-care">Trauma Care</a></div>
<a href="https://www.facebook.com/acme">Facebook</a>
<a href="#main">Skip</a>
<a href="mailto:info@acme-ce.com">Mail</a>
<ul class="pagination"><li><a href="/catalog?page=2">2</a></li></ul>
</body>
</html>`

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	a, err := goquery.NewAnalyzer().Analyze(catalogHTML, "https://www.acme-ce.com/catalog")
	require.NoError(t, err)

	assert.Equal(t, "Course Catalog | Acme CE", a.Title)
	assert.Equal(t, []string{"Continuing Education Courses"}, a.Headings["h1"])
	assert.Equal(t, []string{"Ethics", "Supervision"}, a.Headings["h2"])
	assert.NotContains(t, a.Headings, "h3")

	assert.Equal(t, 9, a.LinkCount)
	assert.Len(t, a.InternalLinks, 6)
	assert.Equal(t, []string{"https://www.facebook.com/acme"}, a.ExternalLinks)
	assert.Equal(t, []string{
		"https://www.acme-ce.com/course/ethics-101",
		"https://www.acme-ce.com/course/supervision",
		"https://www.acme-ce.com/products/trauma-care",
	}, a.CourseCandidates)

	assert.Equal(t, "course-card", a.CSSClasses[0])
	assert.Contains(t, a.CSSClasses, "pagination")
	assert.Equal(t, []string{"top", "search"}, a.IDs)
	assert.Equal(t, 1, a.Forms)
	assert.Equal(t, 1, a.Images)

	require.NotEmpty(t, a.Selectors)
	assert.Equal(t, ceu.SelectorMatch{Selector: ".course-card a", Count: 3}, a.Selectors[0])
}

func TestAnalyzer_Analyze_caps_heading_lists(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<html><body>")
	for i := range 15 {
		fmt.Fprintf(&b, "<h3>Module %d</h3>", i)
	}
	b.WriteString("</body></html>")

	a, err := goquery.NewAnalyzer().Analyze(b.String(), "https://www.acme-ce.com/")
	require.NoError(t, err)
	assert.Len(t, a.Headings["h3"], 10)
}

func TestAnalyzer_Analyze_rejects_relative_URL(t *testing.T) {
	t.Parallel()

	_, err := goquery.NewAnalyzer().Analyze(catalogHTML, "/catalog")
	assert.Equal(t, ceu.EINVALID, ceu.ErrorCode(err))
}

func TestAnalyzer_SuggestProvider(t *testing.T) {
	t.Parallel()

	t.Run("drafts a usable provider from a catalog page", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewAnalyzer().SuggestProvider(catalogHTML, "https://www.acme-ce.com/catalog", "")
		require.NoError(t, err)

		assert.Equal(t, "acme-ce", p.Name)
		assert.Equal(t, "ACME-CE", p.DisplayName)
		assert.True(t, p.Active)
		assert.Equal(t, "https://www.acme-ce.com", p.BaseURL())
		assert.Equal(t, []string{"https://www.acme-ce.com/catalog"}, p.Crawl.StartURLs)
		assert.Equal(t, []string{"/catalog"}, p.Crawl.Patterns.Listing)
		assert.Equal(t, []string{"/course/", "/products/"}, p.Crawl.Patterns.CourseDetail)
		assert.Contains(t, p.Crawl.Patterns.Skip, "/checkout")
		assert.Equal(t, ".course-card a::attr(href)", p.Selectors.CourseLinks.CSS)
		assert.Equal(t, `[class*="course"] a::attr(href)`, p.Selectors.CourseLinks.FallbackCSS)
		assert.Equal(t, ".pagination a::attr(href)", p.Selectors.Pagination.CSS)
		assert.Equal(t, ceu.DefaultDepthLimit, p.Crawl.DepthLimit)
		assert.Empty(t, p.Validate())
	})

	t.Run("uses the given name", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewAnalyzer().SuggestProvider(catalogHTML, "https://courses.example.org/", "exampleorg")
		require.NoError(t, err)
		assert.Equal(t, "exampleorg", p.Name)
		assert.Empty(t, p.Crawl.Patterns.Listing)
	})

	t.Run("defaults the course selector when nothing matches", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewAnalyzer().SuggestProvider("<html><body></body></html>", "https://training.pesi.com/", "")
		require.NoError(t, err)
		assert.Equal(t, "pesi", p.Name)
		assert.Equal(t, "a[href*='/courses/']::attr(href)", p.Selectors.CourseLinks.CSS)
		assert.Empty(t, p.Selectors.CourseLinks.FallbackCSS)
	})
}
