package pattern

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/tasanda/ceu"
)

var instructorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:presented\s+by|instructor|faculty|speaker|taught\s+by)[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
	regexp.MustCompile(`(?:Dr\.|PhD|LCSW|LMFT|LPC|MD)[,\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
}

// ExtractInstructors returns up to ceu.MaxInstructors distinct names.
// Person entities longer than three characters come first, followed by
// names introduced by phrases such as "presented by" or a credential.
func (e *Extractor) ExtractInstructors(text string, persons []ceu.Entity) []string {
	names := []string{}
	add := func(name string) {
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	for _, p := range persons {
		if utf8.RuneCountInString(p.Text) > 3 {
			add(p.Text)
		}
	}
	for _, re := range instructorPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			add(strings.TrimSpace(m[1]))
		}
	}

	if len(names) > ceu.MaxInstructors {
		names = names[:ceu.MaxInstructors]
	}
	return names
}
