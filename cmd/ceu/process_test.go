package main_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasanda/ceu"
	main "github.com/tasanda/ceu/cmd/ceu"
	"github.com/tasanda/ceu/mock"
	"github.com/tasanda/ceu/process"
)

func pendingPages() []*ceu.RawPage {
	return []*ceu.RawPage{
		{ID: "p1", Provider: "acme", URL: "https://www.acme-ce.com/course/1", HTML: "<h1>Ethics</h1>", PageType: ceu.PageTypeCourseDetail},
		{ID: "p2", Provider: "acme", URL: "https://www.acme-ce.com/course/2", HTML: "", PageType: ceu.PageTypeCourseDetail},
		{ID: "p3", Provider: "acme", URL: "https://www.acme-ce.com/courses", PageType: ceu.PageTypeListing},
	}
}

func newRunner(pages []*ceu.RawPage, filters *[]ceu.RawPageFilter) *process.Runner {
	var mu sync.Mutex
	return &process.Runner{
		Processor: &mock.Processor{
			ProcessFn: func(_ context.Context, html, url, provider string) *ceu.ProcessingResult {
				if html == "" {
					return &ceu.ProcessingResult{Success: false, Error: ceu.ErrNoTitle}
				}
				return &ceu.ProcessingResult{Success: true, CourseData: &ceu.CourseData{Title: "Ethics", URL: url}}
			},
		},
		RawPages: &mock.RawPageService{
			FindRawPagesFn: func(_ context.Context, filter ceu.RawPageFilter) ([]*ceu.RawPage, error) {
				mu.Lock()
				defer mu.Unlock()
				if filters != nil {
					*filters = append(*filters, filter)
				}
				return pages, nil
			},
			FindRawPageByIDFn: func(_ context.Context, id string) (*ceu.RawPage, error) {
				for _, p := range pages {
					if p.ID == id {
						return p, nil
					}
				}
				return nil, ceu.Errorf(ceu.ENOTFOUND, "raw page %q not found", id)
			},
			UpdateRawPageFn: func(_ context.Context, id string, upd ceu.RawPageUpdate) (*ceu.RawPage, error) {
				mu.Lock()
				defer mu.Unlock()
				for _, p := range pages {
					if p.ID == id && upd.ProcessingError != nil {
						p.ProcessingError = *upd.ProcessingError
					}
				}
				return &ceu.RawPage{ID: id}, nil
			},
		},
		Courses: &mock.CourseService{
			UpsertCourseFn: func(_ context.Context, c *ceu.Course) (bool, error) {
				c.ID = "course-1"
				return true, nil
			},
		},
	}
}

func TestProcessCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("processes pending pages and prints stats", func(t *testing.T) {
		t.Parallel()

		var filters []ceu.RawPageFilter
		deps, stdout, stderr := newDeps()
		deps.Runner = newRunner(pendingPages(), &filters)

		err := (&main.ProcessCmd{Limit: 10, Provider: "acme", Concurrency: 2}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Processed 3 pages: 1 successful, 1 failed, 1 skipped")
		assert.Contains(t, stdout.String(), "1 created, 0 updated")
		assert.Contains(t, stderr.String(), "fail https://www.acme-ce.com/course/2: No title found")
		require.Len(t, filters, 1)
		assert.Equal(t, 10, filters[0].Limit)
		require.NotNil(t, filters[0].Provider)
		assert.Equal(t, "acme", *filters[0].Provider)
		assert.Equal(t, 2, deps.Runner.Concurrency)
	})

	t.Run("reports when nothing is pending", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Runner = newRunner(nil, nil)

		err := (&main.ProcessCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No pending pages")
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Runner = newRunner(nil, nil)
		deps.Runner.RawPages = &mock.RawPageService{
			FindRawPagesFn: func(context.Context, ceu.RawPageFilter) ([]*ceu.RawPage, error) {
				return nil, errors.New("database is locked")
			},
		}

		err := (&main.ProcessCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestReprocessCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the outcome", func(t *testing.T) {
		t.Parallel()

		pages := pendingPages()
		deps, stdout, _ := newDeps()
		deps.Runner = newRunner(pages, nil)
		deps.RawPages = deps.Runner.RawPages

		err := (&main.ReprocessCmd{ID: "p1"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Reprocessed p1: created")
	})

	t.Run("prints the recorded error for failures", func(t *testing.T) {
		t.Parallel()

		pages := pendingPages()
		deps, stdout, _ := newDeps()
		deps.Runner = newRunner(pages, nil)
		deps.RawPages = deps.Runner.RawPages

		err := (&main.ReprocessCmd{ID: "p2"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Reprocessed p2: failed")
		assert.Contains(t, stdout.String(), "error: No title found")
	})

	t.Run("returns ENOTFOUND for unknown page", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Runner = newRunner(pendingPages(), nil)

		err := (&main.ReprocessCmd{ID: "missing"}).Run(deps)

		assert.Equal(t, ceu.ENOTFOUND, ceu.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
