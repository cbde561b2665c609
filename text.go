package ceu

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizedText is the clean text view of an HTML page consumed by the
// entity and pattern stages.
type NormalizedText struct {
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`

	// FullText never holds consecutive whitespace or control characters.
	// It is empty, not absent, when the page has no text.
	FullText string   `json:"fullText"`
	Headings []string `json:"headings"`

	// StructuredData maps a JSON-LD @type to the last object seen with it.
	StructuredData map[string]any `json:"structuredData"`
}

// StructuredDataTypes returns the JSON-LD types present, in no particular order.
func (t *NormalizedText) StructuredDataTypes() []string {
	types := make([]string, 0, len(t.StructuredData))
	for k := range t.StructuredData {
		types = append(types, k)
	}
	return types
}

// TextNormalizer turns raw HTML into normalized text.
type TextNormalizer interface {
	// Normalize never fails. Malformed HTML yields empty fields.
	Normalize(html string) *NormalizedText
}

// NormalizeText applies NFKC normalization, removes control characters,
// collapses whitespace runs to a single space and trims the result.
func NormalizeText(s string) string {
	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			space = true
		case unicode.IsControl(r):
			// Other C0 and C1 controls are dropped without separating words.
		case unicode.IsSpace(r):
			space = true
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
