package nlp

import (
	"strconv"
	"strings"
	"time"
)

// isoLayout matches the timestamp format used for parsed dates.
const isoLayout = "2006-01-02T15:04:05"

// dateLayouts are tried in order; the first that parses wins.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan. 2, 2006",
	"1/2/2006",
	"2006-01-02",
}

// ParseDate parses s with the known date layouts and returns an ISO-8601
// timestamp, or nil when no layout matches.
func ParseDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.Format(isoLayout)
			return &iso
		}
	}
	return nil
}

// ParseMoney keeps digits, dots and commas from s, drops the commas as
// thousands separators and parses the rest. Returns nil when the result is
// not a number.
func ParseMoney(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &v
}
