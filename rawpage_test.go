package ceu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasanda/ceu"
)

func TestRawPage_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires provider and URL", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, ceu.EINVALID, ceu.ErrorCode((&ceu.RawPage{URL: "https://x.com"}).Validate()))
		assert.Equal(t, ceu.EINVALID, ceu.ErrorCode((&ceu.RawPage{Provider: "acme"}).Validate()))
		assert.NoError(t, (&ceu.RawPage{Provider: "acme", URL: "https://x.com"}).Validate())
	})
}

func TestCourse_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires title and URL", func(t *testing.T) {
		t.Parallel()

		missingTitle := &ceu.Course{CourseData: ceu.CourseData{URL: "https://x.com/c/1"}}
		missingURL := &ceu.Course{CourseData: ceu.CourseData{Title: "Ethics"}}
		valid := &ceu.Course{CourseData: ceu.CourseData{Title: "Ethics", URL: "https://x.com/c/1"}}

		assert.Equal(t, "course title required", ceu.ErrorMessage(missingTitle.Validate()))
		assert.Equal(t, "course URL required", ceu.ErrorMessage(missingURL.Validate()))
		assert.NoError(t, valid.Validate())
	})
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	a := ceu.HashContent("<html>a</html>")

	assert.Len(t, a, 16)
	assert.Equal(t, a, ceu.HashContent("<html>a</html>"))
	assert.NotEqual(t, a, ceu.HashContent("<html>b</html>"))
	assert.Equal(t, "ef46db3751d8e999", ceu.HashContent(""))
}

func TestParsePageType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ceu.PageTypeCourseDetail, ceu.ParsePageType("course_detail"))
	assert.Equal(t, ceu.PageTypeListing, ceu.ParsePageType("listing"))
	assert.Equal(t, ceu.PageTypeHomepage, ceu.ParsePageType("homepage"))
	assert.Equal(t, ceu.PageTypeUnknown, ceu.ParsePageType("sitemap"))
}
