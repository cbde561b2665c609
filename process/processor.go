// Package process turns stored raw pages into course records. Processor runs
// the extraction pipeline over one document; Runner drives it over the
// pending pages in the database.
package process

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/tasanda/ceu"
)

// Ensure Processor implements ceu.Processor at compile time.
var _ ceu.Processor = (*Processor)(nil)

// Fixed contributions of title and description to the overall confidence.
const (
	titleConfidence       = 0.9
	descriptionConfidence = 0.7
)

// Processor merges text normalization, entity recognition and pattern
// extraction into one CourseData.
type Processor struct {
	Normalizer ceu.TextNormalizer
	Recognizer ceu.EntityRecognizer
	Patterns   ceu.PatternExtractor

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewProcessor creates a Processor from its three stages.
func NewProcessor(normalizer ceu.TextNormalizer, recognizer ceu.EntityRecognizer, patterns ceu.PatternExtractor) *Processor {
	return &Processor{
		Normalizer: normalizer,
		Recognizer: recognizer,
		Patterns:   patterns,
		Now:        time.Now,
	}
}

// Process extracts a course from html. The result is successful only when a
// title was found.
func (p *Processor) Process(ctx context.Context, html, url, provider string) (result *ceu.ProcessingResult) {
	meta := &ceu.ExtractionMeta{}
	meta.Timestamps.Start = p.now()

	defer func() {
		if r := recover(); r != nil {
			meta.Timestamps.End = p.now()
			result = &ceu.ProcessingResult{
				Success:  false,
				PageType: ceu.PageTypeCourseDetail,
				Meta:     meta,
				Error:    fmt.Sprint(r),
			}
		}
	}()

	text := p.Normalizer.Normalize(html)
	meta.Text = &ceu.TextExtractionMeta{
		TitleFound:          text.Title != "",
		DescriptionFound:    text.Description != "",
		HeadingsCount:       len(text.Headings),
		StructuredDataTypes: text.StructuredDataTypes(),
	}

	entities := p.Recognizer.Recognize(ctx, text.FullText)
	meta.Entities = &ceu.EntityExtractionMeta{
		Mode:           entities.Mode,
		DatesFound:     len(entities.Dates),
		MoneyFound:     len(entities.Money),
		PersonsFound:   len(entities.Persons),
		DurationsFound: len(entities.Durations),
	}

	ceuData := p.Patterns.Extract(text.FullText, html)
	meta.Patterns = &ceu.PatternExtractionMeta{
		CreditsConfidence:    ceuData.CreditsConfidence,
		PriceConfidence:      ceuData.PriceConfidence,
		CourseTypeConfidence: ceuData.CourseTypeConfidence,
		FieldConfidence:      ceuData.FieldConfidence,
		AccreditationsFound:  len(ceuData.Accreditations),
		MethodsUsed:          ceuData.ExtractionMethods,
	}

	meta.OverallConfidence = overallConfidence(text, ceuData)
	meta.Timestamps.End = p.now()

	if text.Title == "" {
		return &ceu.ProcessingResult{
			Success:  false,
			PageType: ceu.PageTypeCourseDetail,
			Meta:     meta,
			Error:    ceu.ErrNoTitle,
		}
	}

	description := text.Description
	if description == "" {
		description = text.MetaDescription
	}

	data := &ceu.CourseData{
		Title:           text.Title,
		URL:             url,
		Description:     description,
		Instructors:     p.Patterns.ExtractInstructors(text.FullText, entities.Persons),
		Credits:         ceuData.Credits,
		CreditsString:   ceuData.CreditsString,
		Price:           ceuData.Price,
		PriceString:     ceuData.PriceString,
		OriginalPrice:   ceuData.OriginalPrice,
		DurationMinutes: ceuData.DurationMinutes,
		DurationString:  ceuData.DurationString,
		CourseType:      ceuData.CourseType,
		Field:           ceuData.Field,
		StartDate:       startDate(entities.Dates),
		Provider:        provider,
		Accreditations:  ceuData.Accreditations,
		StructuredData:  text.StructuredData,
	}
	if data.Price == nil {
		data.Price = firstParsedMoney(entities.Money)
	}

	return &ceu.ProcessingResult{
		Success:    true,
		PageType:   ceu.PageTypeCourseDetail,
		CourseData: data,
		Meta:       meta,
	}
}

func (p *Processor) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// startDate returns the parsed value of the most confident date that parsed.
func startDate(dates []ceu.DateEntity) string {
	sorted := slices.Clone(dates)
	slices.SortStableFunc(sorted, func(a, b ceu.DateEntity) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	for _, d := range sorted {
		if d.Parsed != nil {
			return *d.Parsed
		}
	}
	return ""
}

func firstParsedMoney(money []ceu.MoneyEntity) *float64 {
	for _, m := range money {
		if m.Parsed != nil {
			v := *m.Parsed
			return &v
		}
	}
	return nil
}

// overallConfidence averages the pattern confidences with fixed scores for
// a present title and description. Absent signals count as zero.
func overallConfidence(text *ceu.NormalizedText, c *ceu.CEUExtraction) float64 {
	scores := []float64{
		c.CreditsConfidence,
		c.PriceConfidence,
		c.CourseTypeConfidence,
		c.FieldConfidence,
		0,
		0,
	}
	if text.Title != "" {
		scores[4] = titleConfidence
	}
	if text.Description != "" {
		scores[5] = descriptionConfidence
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
