package ceu

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatCourse renders course data as an indented, human-readable block.
// Absent fields are omitted.
func FormatCourse(c *CourseData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	if c.URL != "" {
		fmt.Fprintf(&b, "  URL: %s\n", c.URL)
	}
	if c.Credits != nil {
		fmt.Fprintf(&b, "  Credits: %s", strconv.FormatFloat(*c.Credits, 'f', -1, 64))
		if c.CreditsString != "" {
			fmt.Fprintf(&b, " (%s)", c.CreditsString)
		}
		b.WriteString("\n")
	}
	if c.Price != nil {
		fmt.Fprintf(&b, "  Price: $%.2f", *c.Price)
		if c.OriginalPrice != nil {
			fmt.Fprintf(&b, " (was $%.2f)", *c.OriginalPrice)
		}
		b.WriteString("\n")
	}
	if c.DurationMinutes != nil {
		fmt.Fprintf(&b, "  Duration: %d min\n", *c.DurationMinutes)
	}
	fmt.Fprintf(&b, "  Type: %s\n", c.CourseType)
	fmt.Fprintf(&b, "  Field: %s\n", c.Field)
	if len(c.Instructors) > 0 {
		fmt.Fprintf(&b, "  Instructors: %s\n", c.InstructorList())
	}
	if c.StartDate != "" {
		fmt.Fprintf(&b, "  Starts: %s\n", c.StartDate)
	}
	for _, a := range c.Accreditations {
		fmt.Fprintf(&b, "  Accreditation: %s (%s)\n", a.Text, a.Type)
	}
	return b.String()
}

// FormatCounts renders a count table sorted by key, one "key: n" per line,
// followed by the total.
func FormatCounts(title string, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	total := 0
	for k, n := range counts {
		keys = append(keys, k)
		total += n
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-16s %d\n", k+":", counts[k])
	}
	fmt.Fprintf(&b, "  %-16s %d\n", "total:", total)
	return b.String()
}
