package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/mock"
	ceuslog "github.com/tasanda/ceu/slog"
)

func TestLoggingProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("logs successful extraction with confidence", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := &ceu.ProcessingResult{
			Success:    true,
			PageType:   ceu.PageTypeCourseDetail,
			CourseData: &ceu.CourseData{Title: "Ethics"},
			Meta:       &ceu.ExtractionMeta{OverallConfidence: 0.75},
		}
		inner := &mock.Processor{
			ProcessFn: func(ctx context.Context, html, url, provider string) *ceu.ProcessingResult {
				return want
			},
		}

		p := ceuslog.NewLoggingProcessor(inner, logger)
		got := p.Process(context.Background(), "<html></html>", "https://example.com/course/1", "acme")

		assert.Same(t, want, got)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "url=https://example.com/course/1")
		assert.Contains(t, output, "provider=acme")
		assert.Contains(t, output, "success=true")
		assert.Contains(t, output, "confidence=0.75")
	})

	t.Run("logs failed extraction as warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Processor{
			ProcessFn: func(ctx context.Context, html, url, provider string) *ceu.ProcessingResult {
				return &ceu.ProcessingResult{Success: false, Error: ceu.ErrNoTitle}
			},
		}

		p := ceuslog.NewLoggingProcessor(inner, logger)
		got := p.Process(context.Background(), "", "https://example.com/x", "acme")

		assert.False(t, got.Success)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "success=false")
		assert.Contains(t, output, "err=\"No title found\"")
		assert.NotContains(t, output, "confidence=")
	})
}
