package ceu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasanda/ceu"
)

func ptr[T any](v T) *T { return &v }

func TestFormatCourse(t *testing.T) {
	t.Parallel()

	t.Run("formats populated fields", func(t *testing.T) {
		t.Parallel()

		c := &ceu.CourseData{
			Title:         "Trauma-Informed Care",
			URL:           "https://example.com/c/1",
			Credits:       ptr(6.0),
			CreditsString: "6.0",
			Price:         ptr(49.99),
			OriginalPrice: ptr(79.99),
			CourseType:    ceu.CourseTypeSelfPaced,
			Field:         ceu.FieldSocialWork,
			Instructors:   []string{"Jane Doe", "John Roe"},
		}

		out := ceu.FormatCourse(c)

		assert.Contains(t, out, "Title: Trauma-Informed Care\n")
		assert.Contains(t, out, "Credits: 6 (6.0)")
		assert.Contains(t, out, "Price: $49.99 (was $79.99)")
		assert.Contains(t, out, "Type: self_paced")
		assert.Contains(t, out, "Field: social_work")
		assert.Contains(t, out, "Instructors: Jane Doe, John Roe")
		assert.NotContains(t, out, "Duration")
	})

	t.Run("omits absent optional fields", func(t *testing.T) {
		t.Parallel()

		out := ceu.FormatCourse(&ceu.CourseData{Title: "X", CourseType: ceu.CourseTypeOnDemand, Field: ceu.FieldOther})

		assert.NotContains(t, out, "Credits")
		assert.NotContains(t, out, "Price")
		assert.NotContains(t, out, "URL")
	})
}

func TestFormatCounts(t *testing.T) {
	t.Parallel()

	out := ceu.FormatCounts("By status", map[string]int{"pending": 3, "completed": 2})

	assert.Equal(t, "By status:\n  completed:       2\n  pending:         3\n  total:           5\n", out)
}
