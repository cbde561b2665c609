package ceu

import "context"

// Recognition modes reported in an EntityBundle.
const (
	RecognitionModel    = "model"
	RecognitionFallback = "fallback"
)

// Span is a half-open [Start, End) range of rune offsets into the text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Entity is a labelled span of text.
type Entity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Span       Span    `json:"span"`
	Confidence float64 `json:"confidence"`
}

// DateEntity is a date mention. Parsed is an ISO-8601 timestamp derived from
// Text, or nil when no known layout matched.
type DateEntity struct {
	Entity
	Parsed *string `json:"parsed"`
}

// MoneyEntity is a currency amount. Parsed is nil when Text is not numeric.
type MoneyEntity struct {
	Entity
	Parsed *float64 `json:"parsed"`
}

// DurationEntity is a length-of-time mention converted to minutes.
type DurationEntity struct {
	Text       string  `json:"text"`
	Span       Span    `json:"span"`
	Type       string  `json:"type"`
	Minutes    int     `json:"minutes"`
	Confidence float64 `json:"confidence"`
}

// Duration types.
const (
	DurationHours        = "hours"
	DurationMinutes      = "minutes"
	DurationHoursMinutes = "hours_minutes"
	DurationDays         = "days"
)

// EntityBundle groups every entity found in one text.
type EntityBundle struct {
	Mode          string           `json:"mode"`
	Dates         []DateEntity     `json:"dates"`
	Money         []MoneyEntity    `json:"money"`
	Organizations []Entity         `json:"organizations"`
	Locations     []Entity         `json:"locations"`
	Persons       []Entity         `json:"persons"`
	Durations     []DurationEntity `json:"durations"`
}

// EntityRecognizer extracts entities from normalized text.
//
// Implementations hold no per-call state and are safe for concurrent use.
// The context only bounds calls into a remote model; regex-only
// implementations ignore it.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) *EntityBundle
}

// Tag labels produced by an EntityTagger, using the OntoNotes label set.
const (
	TagDate   = "DATE"
	TagMoney  = "MONEY"
	TagOrg    = "ORG"
	TagGPE    = "GPE"
	TagLoc    = "LOC"
	TagFac    = "FAC"
	TagPerson = "PERSON"
	TagTime   = "TIME"
)

// TaggedEntity is one span labelled by a statistical tagger.
type TaggedEntity struct {
	Text  string
	Label string
	Span  Span
}

// EntityTagger is an optional named-entity model. A nil tagger means the
// recognizer runs in regex-only fallback mode.
type EntityTagger interface {
	Tag(ctx context.Context, text string) ([]TaggedEntity, error)
}
