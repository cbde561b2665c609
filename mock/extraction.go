package mock

import (
	"context"

	"github.com/tasanda/ceu"
)

var _ ceu.TextNormalizer = (*TextNormalizer)(nil)

// TextNormalizer is a mock implementation of ceu.TextNormalizer.
type TextNormalizer struct {
	NormalizeFn func(html string) *ceu.NormalizedText
}

func (n *TextNormalizer) Normalize(html string) *ceu.NormalizedText {
	return n.NormalizeFn(html)
}

var _ ceu.PatternExtractor = (*PatternExtractor)(nil)

// PatternExtractor is a mock implementation of ceu.PatternExtractor.
type PatternExtractor struct {
	ExtractFn            func(text, htmlText string) *ceu.CEUExtraction
	ExtractInstructorsFn func(text string, persons []ceu.Entity) []string
}

func (e *PatternExtractor) Extract(text, htmlText string) *ceu.CEUExtraction {
	return e.ExtractFn(text, htmlText)
}

func (e *PatternExtractor) ExtractInstructors(text string, persons []ceu.Entity) []string {
	return e.ExtractInstructorsFn(text, persons)
}

var _ ceu.Processor = (*Processor)(nil)

// Processor is a mock implementation of ceu.Processor.
type Processor struct {
	ProcessFn func(ctx context.Context, html, url, provider string) *ceu.ProcessingResult
}

func (p *Processor) Process(ctx context.Context, html, url, provider string) *ceu.ProcessingResult {
	return p.ProcessFn(ctx, html, url, provider)
}
