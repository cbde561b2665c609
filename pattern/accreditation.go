package pattern

import (
	"regexp"
	"slices"

	"github.com/tasanda/ceu"
)

type accreditationPattern struct {
	re   *regexp.Regexp
	kind string
}

// Acronym and state captures are case-sensitive so that ordinary words
// before "approved" are not taken for accrediting bodies.
var accreditationPatterns = []accreditationPattern{
	{regexp.MustCompile(`(?i)(?:approved|accredited)\s+(?:by|through)\s+([A-Z][A-Za-z\s&]+(?:Board|Association|Council))`), ceu.AccreditationApproval},
	{regexp.MustCompile(`([A-Z]{2,})\s+(?i:approved|accredited|certified)`), ceu.AccreditationAcronym},

	{regexp.MustCompile(`(?i)\b(NASW|NBCC|APA|ASWB|BBS|BRN|CE4Less)\b`), ceu.AccreditationOrganization},
	{regexp.MustCompile(`(?i)(National Board for Certified Counselors)`), ceu.AccreditationOrganization},
	{regexp.MustCompile(`(?i)(American Psychological Association)`), ceu.AccreditationOrganization},
	{regexp.MustCompile(`(?i)(Board of Registered Nursing)`), ceu.AccreditationOrganization},

	{regexp.MustCompile(`(?i:approved\s+(?:in|for)|meets\s+requirements\s+(?:in|for))\s+([A-Z]{2}(?:,\s*[A-Z]{2})*)`), ceu.AccreditationStates},
}

// extractAccreditations collects every match, skipping captured text that
// was already recorded.
func extractAccreditations(text string, r *ceu.CEUExtraction) {
	for _, p := range accreditationPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if slices.ContainsFunc(r.Accreditations, func(a ceu.Accreditation) bool { return a.Text == name }) {
				continue
			}
			r.Accreditations = append(r.Accreditations, ceu.Accreditation{
				Text:      name,
				Type:      p.kind,
				FullMatch: m[0],
			})
		}
	}
	if len(r.Accreditations) > 0 {
		r.ExtractionMethods = append(r.ExtractionMethods, "accreditation:pattern")
	}
}
