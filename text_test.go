package ceu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasanda/ceu"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace runs", "a  b\n\n\tc", "a b c"},
		{"trims", "  hello  ", "hello"},
		{"strips control characters", "a\x00b\x07c\u0085d\x0be", "abcde"},
		{"tabs and newlines separate words", "a\tb\r\nc", "a b c"},
		{"applies NFKC", "ﬁve ① café", "five 1 café"},
		{"empty stays empty", "", ""},
		{"whitespace only becomes empty", " \n\t ", ""},
		{"non-breaking space collapses", "a\u00a0\u00a0b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ceu.NormalizeText(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hél", ceu.Truncate("héllo", 3))
	assert.Equal(t, "hi", ceu.Truncate("hi", 10))
	assert.Equal(t, "", ceu.Truncate("hi", 0))
}
