package process

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tasanda/ceu"
	"golang.org/x/sync/errgroup"
)

// Defaults for ProcessPending.
const (
	DefaultLimit       = 100
	DefaultConcurrency = 4
)

// ErrExtractionFailed is recorded when a failed result carries no message.
const ErrExtractionFailed = "Extraction failed"

// Runner processes stored raw pages and keeps courses in sync with them.
type Runner struct {
	Processor   ceu.Processor
	RawPages    ceu.RawPageService
	Courses     ceu.CourseService
	Concurrency int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Options selects the pages ProcessPending works on.
type Options struct {
	Limit    int
	Provider string
}

// Stats counts the outcomes of a ProcessPending run.
type Stats struct {
	Processed  int `json:"processed"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
	Created    int `json:"coursesCreated"`
	Updated    int `json:"coursesUpdated"`
}

// Outcome is the result of processing one raw page.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSkipped
	OutcomeCreated
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	default:
		return "failed"
	}
}

// ProgressEvent reports one processed page.
type ProgressEvent struct {
	Completed int
	Total     int
	URL       string
	Outcome   Outcome
	Error     string
}

// ProgressFunc is a callback for reporting processing progress.
type ProgressFunc func(event ProgressEvent)

// ProcessPending processes up to opts.Limit pending pages, newest crawl
// first. Page-level extraction failures are counted, not returned; an error
// is returned only when storage fails.
func (r *Runner) ProcessPending(ctx context.Context, opts Options, progress ProgressFunc) (*Stats, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	status := ceu.StatusPending
	filter := ceu.RawPageFilter{Status: &status, Limit: limit}
	if opts.Provider != "" {
		filter.Provider = &opts.Provider
	}

	pages, err := r.RawPages.FindRawPages(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find pending pages: %w", err)
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu    sync.Mutex
		stats Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, page := range pages {
		g.Go(func() error {
			outcome, msg, err := r.processPage(gctx, page)
			if err != nil {
				return fmt.Errorf("process %s: %w", page.URL, err)
			}

			mu.Lock()
			stats.Processed++
			switch outcome {
			case OutcomeSkipped:
				stats.Skipped++
			case OutcomeCreated:
				stats.Successful++
				stats.Created++
			case OutcomeUpdated:
				stats.Successful++
				stats.Updated++
			default:
				stats.Failed++
			}
			completed := stats.Processed
			mu.Unlock()

			if progress != nil {
				progress(ProgressEvent{
					Completed: completed,
					Total:     len(pages),
					URL:       page.URL,
					Outcome:   outcome,
					Error:     msg,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return &stats, err
	}
	return &stats, nil
}

// Reprocess runs the pipeline over one page regardless of its status.
func (r *Runner) Reprocess(ctx context.Context, id string) (Outcome, error) {
	page, err := r.RawPages.FindRawPageByID(ctx, id)
	if err != nil {
		return OutcomeFailed, err
	}
	outcome, _, err := r.processPage(ctx, page)
	return outcome, err
}

// processPage returns the outcome and, for failures, the recorded message.
// Once a page is marked processing, its remaining writes ignore
// cancellation so the row never stays in that state. A page whose
// extraction was interrupted goes back to pending.
func (r *Runner) processPage(ctx context.Context, page *ceu.RawPage) (Outcome, string, error) {
	if err := ctx.Err(); err != nil {
		return OutcomeFailed, "", err
	}
	if err := r.setStatus(ctx, page.ID, ceu.StatusProcessing); err != nil {
		return OutcomeFailed, "", err
	}
	store := context.WithoutCancel(ctx)

	if page.PageType != ceu.PageTypeCourseDetail {
		status := ceu.StatusSkipped
		now := r.now()
		_, err := r.RawPages.UpdateRawPage(store, page.ID, ceu.RawPageUpdate{
			Status:         &status,
			ProcessedAt:    &now,
			ExtractionMeta: &ceu.ExtractionMeta{Reason: ceu.ReasonNotCoursePage},
		})
		return OutcomeSkipped, "", err
	}

	result := r.Processor.Process(ctx, page.HTML, page.URL, page.Provider)
	if err := ctx.Err(); err != nil {
		if resetErr := r.setStatus(store, page.ID, ceu.StatusPending); resetErr != nil {
			return OutcomeFailed, "", errors.Join(err, resetErr)
		}
		return OutcomeFailed, "", err
	}
	if !result.Success || result.CourseData == nil {
		msg := result.Error
		if msg == "" {
			msg = ErrExtractionFailed
		}
		return OutcomeFailed, msg, r.markFailed(store, page.ID, msg, result.Meta)
	}

	course := &ceu.Course{
		Provider:   page.Provider,
		ScrapedAt:  r.now(),
		CourseData: *result.CourseData,
	}
	created, err := r.Courses.UpsertCourse(store, course)
	if err != nil {
		msg := err.Error()
		return OutcomeFailed, msg, r.markFailed(store, page.ID, msg, result.Meta)
	}

	status := ceu.StatusCompleted
	now := r.now()
	if _, err := r.RawPages.UpdateRawPage(store, page.ID, ceu.RawPageUpdate{
		Status:         &status,
		ProcessedAt:    &now,
		ExtractedData:  result.CourseData,
		ExtractionMeta: result.Meta,
		CourseID:       &course.ID,
	}); err != nil {
		return OutcomeFailed, "", err
	}

	if created {
		return OutcomeCreated, "", nil
	}
	return OutcomeUpdated, "", nil
}

func (r *Runner) setStatus(ctx context.Context, id string, status ceu.RawPageStatus) error {
	_, err := r.RawPages.UpdateRawPage(ctx, id, ceu.RawPageUpdate{Status: &status})
	return err
}

func (r *Runner) markFailed(ctx context.Context, id, msg string, meta *ceu.ExtractionMeta) error {
	status := ceu.StatusFailed
	now := r.now()
	_, err := r.RawPages.UpdateRawPage(ctx, id, ceu.RawPageUpdate{
		Status:          &status,
		ProcessedAt:     &now,
		ExtractionMeta:  meta,
		ProcessingError: &msg,
	})
	return err
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now().UTC()
	}
	return r.Now()
}
