package pattern

import (
	"regexp"
	"strings"

	"github.com/tasanda/ceu"
)

// Confidence used when no course type or field cue is present.
const defaultClassConfidence = 0.5

type weighted struct {
	re         *regexp.Regexp
	confidence float64
}

type courseTypeRules struct {
	courseType ceu.CourseType
	patterns   []weighted
}

// courseTypeTable is matched against lower-cased text. On equal scores the
// earlier course type wins.
var courseTypeTable = []courseTypeRules{
	{ceu.CourseTypeLiveWebinar, []weighted{
		{regexp.MustCompile(`live\s+(?:webinar|online|virtual)`), 0.95},
		{regexp.MustCompile(`(?:join|attend)\s+(?:us\s+)?live`), 0.9},
		{regexp.MustCompile(`live\s+(?:event|training|seminar|workshop)`), 0.9},
		{regexp.MustCompile(`real[- ]?time\s+(?:webinar|training)`), 0.85},
		{regexp.MustCompile(`interactive\s+(?:webinar|session)`), 0.8},
	}},
	{ceu.CourseTypeInPerson, []weighted{
		{regexp.MustCompile(`in[- ]?person\s+(?:event|training|seminar|workshop)`), 0.95},
		{regexp.MustCompile(`(?:on[- ]?site|face[- ]?to[- ]?face)`), 0.9},
		{regexp.MustCompile(`(?:attend|join)\s+(?:us\s+)?in\s+person`), 0.9},
		{regexp.MustCompile(`venue|location|conference\s+center`), 0.7},
	}},
	{ceu.CourseTypeOnDemand, []weighted{
		{regexp.MustCompile(`on[- ]?demand`), 0.95},
		{regexp.MustCompile(`(?:watch|access|view)\s+(?:anytime|24/7)`), 0.9},
		{regexp.MustCompile(`(?:recorded|pre[- ]?recorded)\s+(?:webinar|training)`), 0.9},
		{regexp.MustCompile(`instant\s+access`), 0.85},
		{regexp.MustCompile(`start\s+(?:immediately|anytime|now)`), 0.8},
	}},
	{ceu.CourseTypeSelfPaced, []weighted{
		{regexp.MustCompile(`self[- ]?paced`), 0.95},
		{regexp.MustCompile(`self[- ]?study`), 0.9},
		{regexp.MustCompile(`(?:learn|study|complete)\s+at\s+your\s+own\s+pace`), 0.9},
		{regexp.MustCompile(`home\s+study`), 0.85},
		{regexp.MustCompile(`independent\s+study`), 0.8},
	}},
}

// classifyCourseType scores each type by its best matching cue. Without
// any cue the course is on demand.
func classifyCourseType(text string, r *ceu.CEUExtraction) {
	lower := strings.ToLower(text)

	var best ceu.CourseType
	var bestScore float64
	for _, rules := range courseTypeTable {
		var score float64
		for _, p := range rules.patterns {
			if p.confidence > score && p.re.MatchString(lower) {
				score = p.confidence
			}
		}
		if score > bestScore {
			best, bestScore = rules.courseType, score
		}
	}

	if bestScore == 0 {
		r.CourseType = ceu.CourseTypeOnDemand
		r.CourseTypeConfidence = defaultClassConfidence
		return
	}
	r.CourseType = best
	r.CourseTypeConfidence = bestScore
	r.ExtractionMethods = append(r.ExtractionMethods, method("course_type", "pattern", bestScore))
}

type fieldKeywords struct {
	field    ceu.Field
	keywords []string
}

var fieldTable = []fieldKeywords{
	{ceu.FieldMentalHealth, []string{
		"mental health", "therapy", "therapist", "psychotherapy", "counseling",
		"depression", "anxiety", "ptsd", "trauma", "addiction", "substance abuse",
		"behavioral health", "mental illness", "psychiatric", "adhd", "autism",
		"clinical mental health", "psychopathology", "dbt", "cbt", "emdr",
	}},
	{ceu.FieldPsychology, []string{
		"psychology", "psychologist", "cognitive", "neuropsychology",
		"psychological assessment", "psychological testing", "behavioral psychology",
		"clinical psychology", "forensic psychology",
	}},
	{ceu.FieldCounseling, []string{
		"counselor", "counseling", "lmft", "lpc", "lmhc", "family therapy",
		"marriage counseling", "couples therapy", "school counselor",
		"career counseling", "rehabilitation counseling",
	}},
	{ceu.FieldNursing, []string{
		"nursing", "nurse", "rn", "bsn", "lpn", "aprn", "nurse practitioner",
		"clinical nursing", "nursing ce", "nursing continuing education",
		"registered nurse", "nursing practice",
	}},
	{ceu.FieldSocialWork, []string{
		"social work", "social worker", "lsw", "lcsw", "licsw", "msw",
		"clinical social work", "child welfare", "case management",
	}},
}

// maxFieldConfidence caps keyword-coverage confidence.
const maxFieldConfidence = 0.95

// classifyField scores each field by the share of its keywords that occur
// anywhere in the text as substrings. On equal scores the earlier field wins.
func classifyField(text string, r *ceu.CEUExtraction) {
	lower := strings.ToLower(text)

	var best ceu.Field
	var bestScore float64
	for _, f := range fieldTable {
		matches := 0
		for _, kw := range f.keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		score := min(maxFieldConfidence, defaultClassConfidence+float64(matches)/float64(len(f.keywords))*0.5)
		if score > bestScore {
			best, bestScore = f.field, score
		}
	}

	if bestScore == 0 {
		r.Field = ceu.FieldOther
		r.FieldConfidence = defaultClassConfidence
		return
	}
	r.Field = best
	r.FieldConfidence = bestScore
	r.ExtractionMethods = append(r.ExtractionMethods, method("field", "keyword", bestScore))
}
