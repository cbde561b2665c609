package ceu

// CourseType is the delivery format of a course.
type CourseType string

// Course types.
const (
	CourseTypeLiveWebinar CourseType = "live_webinar"
	CourseTypeInPerson    CourseType = "in_person"
	CourseTypeOnDemand    CourseType = "on_demand"
	CourseTypeSelfPaced   CourseType = "self_paced"
)

// Field is the professional field a course targets.
type Field string

// Professional fields.
const (
	FieldMentalHealth Field = "mental_health"
	FieldPsychology   Field = "psychology"
	FieldCounseling   Field = "counseling"
	FieldNursing      Field = "nursing"
	FieldSocialWork   Field = "social_work"
	FieldOther        Field = "other"
)

// Accreditation types.
const (
	AccreditationApproval     = "approval"
	AccreditationAcronym      = "acronym"
	AccreditationOrganization = "organization"
	AccreditationStates       = "states"
)

// Accreditation is a body or jurisdiction that approved a course for credit.
type Accreditation struct {
	Text      string `json:"text"`
	Type      string `json:"type"`
	FullMatch string `json:"fullMatch"`
}

// CEUExtraction holds the continuing-education fields found in a text.
// Nil pointers and empty strings mean the signal was absent.
type CEUExtraction struct {
	Credits           *float64 `json:"credits"`
	CreditsString     string   `json:"creditsString,omitempty"`
	CreditType        string   `json:"creditType,omitempty"`
	CreditsConfidence float64  `json:"creditsConfidence"`

	Accreditations []Accreditation `json:"accreditations"`

	Price           *float64 `json:"price"`
	PriceString     string   `json:"priceString,omitempty"`
	OriginalPrice   *float64 `json:"originalPrice"`
	PriceConfidence float64  `json:"priceConfidence"`

	DurationMinutes *int   `json:"durationMinutes"`
	DurationString  string `json:"durationString,omitempty"`

	CourseType           CourseType `json:"courseType"`
	CourseTypeConfidence float64    `json:"courseTypeConfidence"`

	Field           Field   `json:"field"`
	FieldConfidence float64 `json:"fieldConfidence"`

	Instructors []string `json:"instructors"`

	// ExtractionMethods is the audit trail of rules that fired.
	ExtractionMethods []string `json:"extractionMethods"`
}

// MaxInstructors caps the instructor list.
const MaxInstructors = 5

// PatternExtractor applies continuing-education regex banks to text.
type PatternExtractor interface {
	// Extract runs every sub-extraction over text. A failing
	// sub-extraction leaves its fields unset without affecting the others.
	// htmlText is accepted for extractors that look at markup; it may be empty.
	Extract(text, htmlText string) *CEUExtraction

	// ExtractInstructors returns at most MaxInstructors distinct names,
	// preferring the supplied person entities.
	ExtractInstructors(text string, persons []Entity) []string
}
