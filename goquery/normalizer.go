// Package goquery implements HTML inspection with goquery: text
// normalization for extraction, provider link discovery and page analysis.
package goquery

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/tasanda/ceu"
	"golang.org/x/net/html"
)

// Ensure Normalizer implements ceu.TextNormalizer at compile time.
var _ ceu.TextNormalizer = (*Normalizer)(nil)

// maxDescriptionLen caps descriptions, in characters.
const maxDescriptionLen = 2000

// boilerplateSelector matches subtrees removed before any text is read.
const boilerplateSelector = "script, style, nav, footer, header, aside, noscript, iframe, svg, form"

// descriptionSelectors are tried in order; the first with usable text wins.
var descriptionSelectors = []string{
	".productDescription",
	".product-description",
	".description",
	".course-description",
	".overview",
	".summary",
	".about",
	`[itemprop="description"]`,
	".content p",
}

// titleSuffix matches a trailing " | Site Name" style suffix.
var titleSuffix = regexp.MustCompile(`\s*[|–-]\s*[^|–-]+$`)

// Normalizer extracts normalized text from HTML.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize parses html and returns its normalized text view.
func (n *Normalizer) Normalize(rawHTML string) *ceu.NormalizedText {
	result := &ceu.NormalizedText{
		Headings:       []string{},
		StructuredData: map[string]any{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return result
	}

	// JSON-LD lives in script tags, so read it before they are removed.
	result.StructuredData = structuredData(doc)

	doc.Find(boilerplateSelector).Remove()

	result.Title = title(doc)
	result.MetaDescription = metaDescription(doc)
	result.Headings = headings(doc)
	result.Description = description(doc)
	result.FullText = ceu.NormalizeText(documentText(doc))

	return result
}

func title(doc *goquery.Document) string {
	if t := ceu.NormalizeText(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if sel := doc.Find("title").First(); sel.Length() > 0 {
		t := titleSuffix.ReplaceAllString(sel.Text(), "")
		if t = ceu.NormalizeText(t); t != "" {
			return t
		}
	}
	return metaContent(doc, `meta[property="og:title"]`)
}

func metaDescription(doc *goquery.Document) string {
	if d := metaContent(doc, `meta[name="description"]`); d != "" {
		return d
	}
	return metaContent(doc, `meta[property="og:description"]`)
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return ceu.NormalizeText(content)
}

// headings returns h1 headings first, then h2, down to h6.
func headings(doc *goquery.Document) []string {
	out := []string{}
	for _, tag := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			if t := ceu.NormalizeText(s.Text()); utf8.RuneCountInString(t) > 2 {
				out = append(out, t)
			}
		})
	}
	return out
}

func description(doc *goquery.Document) string {
	for _, selector := range descriptionSelectors {
		var parts []string
		sel := doc.Find(selector)
		sel.Slice(0, min(3, sel.Length())).Each(func(_ int, s *goquery.Selection) {
			if t := ceu.NormalizeText(s.Text()); utf8.RuneCountInString(t) > 20 {
				parts = append(parts, t)
			}
		})
		if len(parts) > 0 {
			return ceu.Truncate(strings.Join(parts, " "), maxDescriptionLen)
		}
	}

	var fallback string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t := ceu.NormalizeText(s.Text()); utf8.RuneCountInString(t) > 100 {
			fallback = ceu.Truncate(t, maxDescriptionLen)
			return false
		}
		return true
	})
	return fallback
}

// documentText joins every remaining text node with a single space.
func documentText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return b.String()
}

// structuredData parses JSON-LD blocks keyed by @type. Later blocks replace
// earlier ones with the same type; top-level arrays are flattened one level.
func structuredData(doc *goquery.Document) map[string]any {
	data := map[string]any{}
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return
		}
		switch v := v.(type) {
		case map[string]any:
			data[schemaType(v)] = v
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok {
					data[schemaType(obj)] = obj
				}
			}
		}
	})
	return data
}

// schemaType returns an object's @type, the first string of a @type list,
// or "unknown".
func schemaType(obj map[string]any) string {
	switch t := obj["@type"].(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				return s
			}
		}
	}
	return "unknown"
}
