// Package nlp implements entity recognition over normalized text: a
// regex-only recognizer and a recognizer backed by a statistical tagger.
package nlp

import (
	"context"
	"regexp"
	"unicode/utf8"

	"github.com/tasanda/ceu"
)

// Fixed confidences assigned to recognized entities.
const (
	ModelConfidence         = 0.8
	FallbackDateConfidence  = 0.7
	FallbackMoneyConfidence = 0.9
	DurationConfidence      = 0.85
)

// Compile-time interface verification.
var (
	_ ceu.EntityRecognizer = (*FallbackRecognizer)(nil)
	_ ceu.EntityRecognizer = (*ModelRecognizer)(nil)
)

// New returns the recognizer for the available capability: a
// ModelRecognizer when tagger is non-nil, else a FallbackRecognizer.
// Call it once at startup and share the result.
func New(tagger ceu.EntityTagger) ceu.EntityRecognizer {
	if tagger == nil {
		return NewFallbackRecognizer()
	}
	return NewModelRecognizer(tagger)
}

var (
	fallbackDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`),
		regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2},?\s+\d{4}`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	}
	fallbackMoneyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$[\d,]+\.?\d*`),
		regexp.MustCompile(`(?i)USD\s*[\d,]+\.?\d*`),
	}
)

// FallbackRecognizer finds dates, money and durations with regular
// expressions alone. It never reports organizations, locations or persons.
type FallbackRecognizer struct{}

// NewFallbackRecognizer creates a new FallbackRecognizer.
func NewFallbackRecognizer() *FallbackRecognizer {
	return &FallbackRecognizer{}
}

// Recognize extracts entities from text. The context is unused.
func (r *FallbackRecognizer) Recognize(_ context.Context, text string) *ceu.EntityBundle {
	b := newBundle(ceu.RecognitionFallback)
	if text == "" {
		return b
	}

	for _, re := range fallbackDatePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			match := text[loc[0]:loc[1]]
			b.Dates = append(b.Dates, ceu.DateEntity{
				Entity: ceu.Entity{
					Text:       match,
					Label:      ceu.TagDate,
					Span:       runeSpan(text, loc[0], loc[1]),
					Confidence: FallbackDateConfidence,
				},
				Parsed: ParseDate(match),
			})
		}
	}

	for _, re := range fallbackMoneyPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			match := text[loc[0]:loc[1]]
			b.Money = append(b.Money, ceu.MoneyEntity{
				Entity: ceu.Entity{
					Text:       match,
					Label:      ceu.TagMoney,
					Span:       runeSpan(text, loc[0], loc[1]),
					Confidence: FallbackMoneyConfidence,
				},
				Parsed: ParseMoney(match),
			})
		}
	}

	b.Durations = append(b.Durations, ExtractDurations(text)...)
	return b
}

// ModelRecognizer maps the spans of a statistical tagger onto entity
// categories. If the tagger fails for a document, that document is
// recognized in fallback mode instead.
type ModelRecognizer struct {
	tagger   ceu.EntityTagger
	fallback *FallbackRecognizer
}

// NewModelRecognizer creates a new ModelRecognizer over tagger.
func NewModelRecognizer(tagger ceu.EntityTagger) *ModelRecognizer {
	return &ModelRecognizer{tagger: tagger, fallback: NewFallbackRecognizer()}
}

// Recognize extracts entities from text using the tagger.
func (r *ModelRecognizer) Recognize(ctx context.Context, text string) *ceu.EntityBundle {
	if text == "" {
		return newBundle(ceu.RecognitionModel)
	}

	tagged, err := r.tagger.Tag(ctx, text)
	if err != nil {
		return r.fallback.Recognize(ctx, text)
	}

	b := newBundle(ceu.RecognitionModel)
	for _, t := range tagged {
		ent := ceu.Entity{
			Text:       t.Text,
			Label:      t.Label,
			Span:       t.Span,
			Confidence: ModelConfidence,
		}
		switch t.Label {
		case ceu.TagDate:
			b.Dates = append(b.Dates, ceu.DateEntity{Entity: ent, Parsed: ParseDate(t.Text)})
		case ceu.TagMoney:
			b.Money = append(b.Money, ceu.MoneyEntity{Entity: ent, Parsed: ParseMoney(t.Text)})
		case ceu.TagOrg:
			b.Organizations = append(b.Organizations, ent)
		case ceu.TagGPE, ceu.TagLoc, ceu.TagFac:
			b.Locations = append(b.Locations, ent)
		case ceu.TagPerson:
			b.Persons = append(b.Persons, ent)
		}
	}

	// Durations come from the duration extractor alone; TIME spans are clock
	// times without a length.
	b.Durations = append(b.Durations, ExtractDurations(text)...)
	return b
}

func newBundle(mode string) *ceu.EntityBundle {
	return &ceu.EntityBundle{
		Mode:          mode,
		Dates:         []ceu.DateEntity{},
		Money:         []ceu.MoneyEntity{},
		Organizations: []ceu.Entity{},
		Locations:     []ceu.Entity{},
		Persons:       []ceu.Entity{},
		Durations:     []ceu.DurationEntity{},
	}
}

// runeSpan converts byte offsets into text to rune offsets.
func runeSpan(text string, start, end int) ceu.Span {
	s := utf8.RuneCountInString(text[:start])
	return ceu.Span{Start: s, End: s + utf8.RuneCountInString(text[start:end])}
}
