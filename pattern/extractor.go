// Package pattern extracts continuing-education fields from normalized text
// with static tables of weighted regular expressions.
package pattern

import (
	"fmt"

	"github.com/tasanda/ceu"
)

// Ensure Extractor implements ceu.PatternExtractor at compile time.
var _ ceu.PatternExtractor = (*Extractor)(nil)

// Extractor runs the credit, accreditation, price, duration, course type
// and field sub-extractions. It holds no state and is safe for concurrent use.
type Extractor struct {
	stages []stage
}

// stage is one named sub-extraction writing its fields into r.
type stage struct {
	name string
	run  func(text string, r *ceu.CEUExtraction)
}

var defaultStages = []stage{
	{"credits", extractCredits},
	{"accreditation", extractAccreditations},
	{"price", extractPrice},
	{"duration", extractDuration},
	{"course_type", classifyCourseType},
	{"field", classifyField},
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{stages: defaultStages}
}

// Extract runs every sub-extraction over text. htmlText is accepted for
// markup-aware rules and is currently unused.
func (e *Extractor) Extract(text, _ string) *ceu.CEUExtraction {
	r := &ceu.CEUExtraction{
		Accreditations:    []ceu.Accreditation{},
		Instructors:       []string{},
		ExtractionMethods: []string{},
	}

	stages := e.stages
	if stages == nil {
		stages = defaultStages
	}
	for _, s := range stages {
		isolate(r, s.name, func() { s.run(text, r) })
	}
	return r
}

// isolate runs one sub-extraction so that a panic inside it is recorded in
// the audit trail instead of aborting its siblings.
func isolate(r *ceu.CEUExtraction, name string, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			r.ExtractionMethods = append(r.ExtractionMethods, name+":failed")
		}
	}()
	fn()
}

func method(name, kind string, confidence float64) string {
	return fmt.Sprintf("%s:%s:%.2f", name, kind, confidence)
}
