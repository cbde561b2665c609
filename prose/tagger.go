// Package prose implements an in-process named-entity tagger on the
// jdkato/prose statistical model.
package prose

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
	"github.com/tasanda/ceu"
)

var _ ceu.EntityTagger = (*Tagger)(nil)

// Tagger tags entities with the bundled prose model. The model is loaded
// once by NewTagger and only read afterwards, so a Tagger is safe for
// concurrent use.
type Tagger struct {
	model *prose.Model
}

// NewTagger loads the prose model.
func NewTagger() (*Tagger, error) {
	doc, err := prose.NewDocument("", prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}
	return &Tagger{model: doc.Model}, nil
}

// Tag returns the entities the model finds in text with rune spans.
func (t *Tagger) Tag(ctx context.Context, text string) ([]ceu.TaggedEntity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.UsingModel(t.model),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, err
	}

	var entities []ceu.TaggedEntity
	cursor := 0
	for _, ent := range doc.Entities() {
		start := strings.Index(text[cursor:], ent.Text)
		if start == -1 {
			continue
		}
		start += cursor
		cursor = start + len(ent.Text)

		runeStart := utf8.RuneCountInString(text[:start])
		entities = append(entities, ceu.TaggedEntity{
			Text:  ent.Text,
			Label: ent.Label,
			Span:  ceu.Span{Start: runeStart, End: runeStart + utf8.RuneCountInString(ent.Text)},
		})
	}
	return entities, nil
}
