package nlp

import (
	"regexp"
	"strconv"

	"github.com/tasanda/ceu"
)

// minutesPerDay counts a day as an eight-hour working day.
const minutesPerDay = 8 * 60

type durationPattern struct {
	re      *regexp.Regexp
	kind    string
	minutes func(m []string) (int, bool)
}

var durationPatterns = []durationPattern{
	{
		re:   regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(hours?|hrs?)\b`),
		kind: ceu.DurationHours,
		minutes: func(m []string) (int, bool) {
			h, err := strconv.ParseFloat(m[1], 64)
			return int(h * 60), err == nil
		},
	},
	{
		re:   regexp.MustCompile(`(?i)(\d+)\s*(minutes?|mins?)\b`),
		kind: ceu.DurationMinutes,
		minutes: func(m []string) (int, bool) {
			n, err := strconv.Atoi(m[1])
			return n, err == nil
		},
	},
	{
		re:   regexp.MustCompile(`(?i)(\d+)\s*(?:hours?|hrs?)\s*(?:and\s*)?(\d+)\s*(?:minutes?|mins?)`),
		kind: ceu.DurationHoursMinutes,
		minutes: func(m []string) (int, bool) {
			h, err1 := strconv.Atoi(m[1])
			n, err2 := strconv.Atoi(m[2])
			return h*60 + n, err1 == nil && err2 == nil
		},
	},
	{
		re:   regexp.MustCompile(`(?i)(\d+)\s*(days?)\b`),
		kind: ceu.DurationDays,
		minutes: func(m []string) (int, bool) {
			n, err := strconv.Atoi(m[1])
			return n * minutesPerDay, err == nil
		},
	},
}

// ExtractDurations returns every duration mention in text, grouped by
// pattern family in the order hours, minutes, hours-and-minutes, days.
// Overlapping families both report their match.
func ExtractDurations(text string) []ceu.DurationEntity {
	out := []ceu.DurationEntity{}
	for _, p := range durationPatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			m := submatches(text, idx)
			minutes, ok := p.minutes(m)
			if !ok {
				continue
			}
			out = append(out, ceu.DurationEntity{
				Text:       m[0],
				Span:       runeSpan(text, idx[0], idx[1]),
				Type:       p.kind,
				Minutes:    minutes,
				Confidence: DurationConfidence,
			})
		}
	}
	return out
}

func submatches(text string, idx []int) []string {
	m := make([]string, len(idx)/2)
	for i := range m {
		if idx[2*i] >= 0 {
			m[i] = text[idx[2*i]:idx[2*i+1]]
		}
	}
	return m
}
