package goquery_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasanda/ceu/goquery"
)

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("builds full text from visible text including the document title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Example | Site</title></head><body><h1>Trauma-Informed Care</h1><p>Earn up to 6.0 CE hours. $199.99. Self-paced online course for LCSW and LMSW.</p></body></html>`

		got := goquery.NewNormalizer().Normalize(html)

		assert.Equal(t, "Trauma-Informed Care", got.Title)
		assert.Equal(t, "Example | Site Trauma-Informed Care Earn up to 6.0 CE hours. $199.99. Self-paced online course for LCSW and LMSW.", got.FullText)
		assert.Equal(t, []string{"Trauma-Informed Care"}, got.Headings)
	})

	t.Run("removes boilerplate subtrees before reading text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<header>Site Header</header>
<nav><a href="/">Home</a></nav>
<main><h1>Course</h1><p>Body text</p></main>
<aside>Related</aside>
<form><label>Email</label></form>
<footer>Copyright</footer>
<script>var x = 1;</script>
<style>p { color: red }</style>
</body></html>`

		got := goquery.NewNormalizer().Normalize(html)

		assert.Equal(t, "Course Body text", got.FullText)
	})

	t.Run("falls back to title tag with site suffix stripped", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewNormalizer().Normalize(`<html><head><title>Ethics in Practice | PESI</title></head><body></body></html>`)

		assert.Equal(t, "Ethics in Practice", got.Title)
	})

	t.Run("falls back to og:title when h1 and title are empty", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content="Grief Counseling"></head><body><h1> </h1></body></html>`

		got := goquery.NewNormalizer().Normalize(html)

		assert.Equal(t, "Grief Counseling", got.Title)
	})

	t.Run("prefers meta description over og:description", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta property="og:description" content="OG text">
<meta name="description" content="  Plain   text ">
</head><body></body></html>`

		got := goquery.NewNormalizer().Normalize(html)

		assert.Equal(t, "Plain text", got.MetaDescription)
	})

	t.Run("orders headings by level and drops short ones", func(t *testing.T) {
		t.Parallel()

		html := `<body><h2>Objectives</h2><h1>Main Title</h1><h3>Hi</h3><h2>Agenda</h2></body>`

		got := goquery.NewNormalizer().Normalize(html)

		assert.Equal(t, []string{"Main Title", "Objectives", "Agenda"}, got.Headings)
	})

	t.Run("joins up to three description matches longer than twenty characters", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<div class="description">This course covers evidence based care.</div>
<div class="description">short</div>
<div class="description">Participants will learn assessment skills.</div>
<div class="description">A fourth block that is never considered here.</div>
</body>`

		got := goquery.NewNormalizer().Normalize(html)

		assert.Equal(t, "This course covers evidence based care. Participants will learn assessment skills.", got.Description)
	})

	t.Run("falls back to first long paragraph truncated to 2000 characters", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("é", 2500)
		html := `<body><p>Too short to count.</p><p>` + long + `</p></body>`

		got := goquery.NewNormalizer().Normalize(html)

		assert.Equal(t, 2000, utf8.RuneCountInString(got.Description))
	})

	t.Run("extracts JSON-LD keyed by type, last one wins", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">{"@type": "Course", "name": "First"}</script>
<script type="application/ld+json">[{"@type": "Organization", "name": "PESI"}, {"@type": "Course", "name": "Second"}, 3]</script>
<script type="application/ld+json">{"name": "untyped"}</script>
<script type="application/ld+json">{"@type": ["Product", "Course"], "sku": "1"}</script>
<script type="application/ld+json">not json</script>
</head><body><h1>T</h1></body></html>`

		got := goquery.NewNormalizer().Normalize(html)

		require.Len(t, got.StructuredData, 4)
		course, ok := got.StructuredData["Course"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Second", course["name"])
		assert.Contains(t, got.StructuredData, "Organization")
		assert.Contains(t, got.StructuredData, "unknown")
		assert.Contains(t, got.StructuredData, "Product")
		assert.NotContains(t, got.FullText, "@type")
	})

	t.Run("returns empty fields for empty input", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewNormalizer().Normalize("")

		assert.Empty(t, got.Title)
		assert.Empty(t, got.FullText)
		assert.NotNil(t, got.Headings)
		assert.NotNil(t, got.StructuredData)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>A - B</title></head><body><h1>X</h1><p>Some   text</p></body></html>`
		n := goquery.NewNormalizer()

		assert.Equal(t, n.Normalize(html), n.Normalize(html))
	})
}
