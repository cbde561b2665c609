package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasanda/ceu"
	"github.com/tasanda/ceu/mock"
	ceuslog "github.com/tasanda/ceu/slog"
)

func TestLoggingTagger_Tag(t *testing.T) {
	t.Parallel()

	t.Run("logs entity count at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.EntityTagger{
			TagFn: func(ctx context.Context, text string) ([]ceu.TaggedEntity, error) {
				return []ceu.TaggedEntity{{Text: "Jane Doe", Label: ceu.TagPerson}}, nil
			},
		}

		tagger := ceuslog.NewLoggingTagger(inner, "prose", newDebugLogger(&buf))
		entities, err := tagger.Tag(context.Background(), "Jane Doe")

		require.NoError(t, err)
		assert.Len(t, entities, 1)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "model=prose")
		assert.Contains(t, output, "entities=1")
	})

	t.Run("warns about fallback on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.EntityTagger{
			TagFn: func(ctx context.Context, text string) ([]ceu.TaggedEntity, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		tagger := ceuslog.NewLoggingTagger(inner, "gemini", newDebugLogger(&buf))
		_, err := tagger.Tag(context.Background(), "text")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "fallback")
		assert.Contains(t, output, "err=\"quota exceeded\"")
	})
}

func TestLogRecognitionMode(t *testing.T) {
	t.Parallel()

	t.Run("warns when no model is configured", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		ceuslog.LogRecognitionMode(slog.New(slog.NewTextHandler(&buf, nil)), nil, "")

		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "fallback recognition")
	})

	t.Run("reports the loaded model", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		ceuslog.LogRecognitionMode(slog.New(slog.NewTextHandler(&buf, nil)), &mock.EntityTagger{}, "prose")

		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "model=prose")
	})
}
