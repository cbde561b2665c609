package pattern

import (
	"regexp"
	"strconv"

	"github.com/tasanda/ceu"
)

type durationRule struct {
	re      *regexp.Regexp
	minutes func(m []string) (int, error)
}

// durationRules are tried in order; the first rule that matches wins.
var durationRules = []durationRule{
	{regexp.MustCompile(`(?i)(\d+)\s*(?:hours?|hrs?)\s*(?:and\s*)?(\d+)\s*(?:minutes?|mins?)`), func(m []string) (int, error) {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(m[2])
		return h*60 + n, err
	}},
	{regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:hours?|hrs?)`), func(m []string) (int, error) {
		h, err := strconv.ParseFloat(m[1], 64)
		return int(h * 60), err
	}},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:minutes?|mins?)`), func(m []string) (int, error) {
		return strconv.Atoi(m[1])
	}},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:days?)`), func(m []string) (int, error) {
		n, err := strconv.Atoi(m[1])
		return n * 8 * 60, err
	}},
}

func extractDuration(text string, r *ceu.CEUExtraction) {
	for _, rule := range durationRules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		minutes, err := rule.minutes(m)
		if err != nil {
			continue
		}
		r.DurationMinutes = &minutes
		r.DurationString = m[0]
		r.ExtractionMethods = append(r.ExtractionMethods, "duration:pattern")
		return
	}
}
