// Package preview renders the main content of a page as Markdown, so a
// provider page can be inspected without its navigation and boilerplate.
package preview

import (
	"bytes"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"github.com/tasanda/ceu"
	"golang.org/x/net/html"
)

// Ensure Previewer implements ceu.ContentPreviewer at compile time.
var _ ceu.ContentPreviewer = (*Previewer)(nil)

// Previewer extracts main content with trafilatura, falling back to
// readability when trafilatura finds nothing, and converts it to Markdown.
type Previewer struct {
	conv *converter.Converter
}

// NewPreviewer creates a new Previewer.
func NewPreviewer() *Previewer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Previewer{conv: conv}
}

// Preview returns the page title and its main content as Markdown.
// Returns EINVALID for empty input and ENOTFOUND when no content is found.
func (p *Previewer) Preview(rawHTML string) (*ceu.ContentPreview, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, ceu.Errorf(ceu.EINVALID, "empty HTML input")
	}

	title, content, err := extractTrafilatura(rawHTML)
	if err != nil || strings.TrimSpace(content) == "" {
		var fallbackTitle string
		fallbackTitle, content, err = extractReadability(rawHTML)
		if err != nil {
			return nil, err
		}
		if title == "" {
			title = fallbackTitle
		}
	}
	if strings.TrimSpace(content) == "" {
		return nil, ceu.Errorf(ceu.ENOTFOUND, "no main content found")
	}

	markdown, err := p.conv.ConvertString(content)
	if err != nil {
		return nil, err
	}
	return &ceu.ContentPreview{Title: title, Markdown: strings.TrimSpace(markdown)}, nil
}

func extractTrafilatura(rawHTML string) (title, content string, err error) {
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{EnableFallback: true})
	if err != nil {
		return "", "", err
	}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return "", "", err
		}
		content = buf.String()
	}
	return result.Metadata.Title, content, nil
}

func extractReadability(rawHTML string) (title, content string, err error) {
	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", "", err
	}
	return article.Title, article.Content, nil
}
