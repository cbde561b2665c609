package pattern

import (
	"regexp"
	"strconv"

	"github.com/tasanda/ceu"
)

// Accepted credit range, inclusive.
const (
	minCredits = 0.5
	maxCredits = 100
)

type creditPattern struct {
	re         *regexp.Regexp
	confidence float64
	label      string
}

// creditPatterns run from most to least specific.
var creditPatterns = []creditPattern{
	{regexp.MustCompile(`(?i)(?:earn|receive|get)\s+(?:up\s+to\s+)?(\d+\.?\d*)\s*(?:CE|CEU|clock|contact)\s*hours?`), 0.95, "CE hours"},
	{regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:CE|CEU)\s*(?:credit|hour)s?\s*(?:available)?`), 0.9, "CE credits"},
	{regexp.MustCompile(`(?i)(\d+\.?\d*)\s*continuing\s*education\s*(?:credit|hour|unit)s?`), 0.9, "CE"},
	{regexp.MustCompile(`(?i)(?:CE|CEU)\s*(?:credit|hour)s?[:\s]+(\d+\.?\d*)`), 0.85, "CE"},

	{regexp.MustCompile(`(?i)(\d+\.?\d*)\s*clock\s*hours?`), 0.8, "clock hours"},
	{regexp.MustCompile(`(?i)(\d+\.?\d*)\s*contact\s*hours?`), 0.8, "contact hours"},
	{regexp.MustCompile(`(?i)credit\s*hours?[:\s]+(\d+\.?\d*)`), 0.75, "credit hours"},
	{regexp.MustCompile(`(?i)(\d+\.?\d*)\s*professional\s*development\s*(?:hour|unit)s?`), 0.75, "PD"},

	{regexp.MustCompile(`(?i)(?:approved\s+for|offers?)\s+(\d+\.?\d*)\s*(?:CE|credit)`), 0.7, "CE"},
	{regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:CE|credit)s?\b`), 0.6, "CE"},
}

// extractCredits keeps the in-range match with the strictly highest
// confidence. Equal confidences keep the earlier pattern's match.
func extractCredits(text string, r *ceu.CEUExtraction) {
	var (
		best     float64
		bestConf float64
		bestText string
		label    string
	)
	for _, p := range creditPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if v >= minCredits && v <= maxCredits && p.confidence > bestConf {
				best, bestConf, bestText, label = v, p.confidence, m[0], p.label
			}
		}
	}
	if bestConf == 0 {
		return
	}

	r.Credits = &best
	r.CreditsString = bestText
	r.CreditType = label
	r.CreditsConfidence = bestConf
	r.ExtractionMethods = append(r.ExtractionMethods, method("credits", "pattern", bestConf))
}
