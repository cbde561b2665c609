package ceu

import (
	"context"
	"strings"
	"time"
)

// PageType classifies a crawled page.
type PageType string

// Page types.
const (
	PageTypeCourseDetail PageType = "course_detail"
	PageTypeListing      PageType = "listing"
	PageTypeHomepage     PageType = "homepage"
	PageTypeUnknown      PageType = "unknown"
)

// ParsePageType returns the PageType for s, or PageTypeUnknown.
func ParsePageType(s string) PageType {
	switch pt := PageType(s); pt {
	case PageTypeCourseDetail, PageTypeListing, PageTypeHomepage:
		return pt
	}
	return PageTypeUnknown
}

// CourseData is the merged course record produced for one page.
type CourseData struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	Instructors []string `json:"instructors,omitempty"`

	Credits       *float64 `json:"credits"`
	CreditsString string   `json:"creditsString,omitempty"`

	Price         *float64 `json:"price"`
	PriceString   string   `json:"priceString,omitempty"`
	OriginalPrice *float64 `json:"originalPrice"`

	DurationMinutes *int   `json:"duration"`
	DurationString  string `json:"durationString,omitempty"`

	CourseType CourseType `json:"courseType"`
	Field      Field      `json:"field"`

	// StartDate is an ISO-8601 timestamp, empty when no date parsed.
	StartDate string `json:"startDate,omitempty"`
	Provider  string `json:"provider,omitempty"`

	Accreditations []Accreditation `json:"accreditations"`
	StructuredData map[string]any  `json:"structuredData,omitempty"`
}

// InstructorList joins instructors for display and storage.
func (c *CourseData) InstructorList() string {
	return strings.Join(c.Instructors, ", ")
}

// ExtractionTimestamps records when processing started and ended.
type ExtractionTimestamps struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TextExtractionMeta summarizes the text normalization stage.
type TextExtractionMeta struct {
	TitleFound          bool     `json:"titleFound"`
	DescriptionFound    bool     `json:"descriptionFound"`
	HeadingsCount       int      `json:"headingsCount"`
	StructuredDataTypes []string `json:"structuredDataTypes"`
}

// EntityExtractionMeta summarizes the entity recognition stage.
type EntityExtractionMeta struct {
	Mode           string `json:"mode"`
	DatesFound     int    `json:"datesFound"`
	MoneyFound     int    `json:"moneyFound"`
	PersonsFound   int    `json:"personsFound"`
	DurationsFound int    `json:"durationsFound"`
}

// PatternExtractionMeta summarizes the pattern extraction stage.
type PatternExtractionMeta struct {
	CreditsConfidence    float64  `json:"creditsConfidence"`
	PriceConfidence      float64  `json:"priceConfidence"`
	CourseTypeConfidence float64  `json:"courseTypeConfidence"`
	FieldConfidence      float64  `json:"fieldConfidence"`
	AccreditationsFound  int      `json:"accreditationsFound"`
	MethodsUsed          []string `json:"methodsUsed"`
}

// ExtractionMeta holds per-stage diagnostics for a ProcessingResult.
// Stage sections are nil when the stage did not run.
type ExtractionMeta struct {
	Timestamps        ExtractionTimestamps   `json:"timestamps"`
	Text              *TextExtractionMeta    `json:"textExtraction,omitempty"`
	Entities          *EntityExtractionMeta  `json:"nlpExtraction,omitempty"`
	Patterns          *PatternExtractionMeta `json:"ceuExtraction,omitempty"`
	OverallConfidence float64                `json:"overallConfidence"`

	// Reason explains why a page was not extracted, e.g. ReasonNotCoursePage.
	Reason string `json:"reason,omitempty"`
}

// ReasonNotCoursePage marks pages skipped because they are not course pages.
const ReasonNotCoursePage = "not_course_page"

// ProcessingResult is the outcome of extracting one HTML document.
// It is built once and not modified afterwards.
type ProcessingResult struct {
	Success    bool            `json:"success"`
	PageType   PageType        `json:"pageType"`
	CourseData *CourseData     `json:"courseData,omitempty"`
	Meta       *ExtractionMeta `json:"extractionMeta,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// ErrNoTitle is the error reported when no title could be found.
const ErrNoTitle = "No title found"

// Processor runs the full extraction pipeline over one HTML document.
type Processor interface {
	// Process never panics and never returns a Go error: failures are
	// reported through ProcessingResult.Success and Error. The context is
	// passed to the entity model only.
	Process(ctx context.Context, html, url, provider string) *ProcessingResult
}
