package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/tasanda/ceu"
)

// Ensure LoggingTagger implements ceu.EntityTagger.
var _ ceu.EntityTagger = (*LoggingTagger)(nil)

// LoggingTagger wraps an EntityTagger with logging. A failed call means
// the document is recognized in fallback mode, so failures are warnings.
type LoggingTagger struct {
	next   ceu.EntityTagger
	name   string
	logger *slog.Logger
}

// NewLoggingTagger creates a new LoggingTagger. Name identifies the model
// backend in log records.
func NewLoggingTagger(next ceu.EntityTagger, name string, logger *slog.Logger) *LoggingTagger {
	return &LoggingTagger{next: next, name: name, logger: logger}
}

// Tag delegates to the wrapped tagger and logs the operation.
func (t *LoggingTagger) Tag(ctx context.Context, text string) (entities []ceu.TaggedEntity, err error) {
	defer func(begin time.Time) {
		if err != nil {
			t.logger.Warn("entity tagging failed, using fallback recognition",
				"model", t.name,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		t.logger.Debug("entity tagging",
			"model", t.name,
			"entities", len(entities),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return t.next.Tag(ctx, text)
}

// LogRecognitionMode records which entity recognition mode was selected at
// startup. A nil tagger means regex-only fallback mode.
func LogRecognitionMode(logger *slog.Logger, tagger ceu.EntityTagger, name string) {
	if tagger == nil {
		logger.Warn("no entity model configured, using fallback recognition")
		return
	}
	logger.Info("entity model loaded", "model", name)
}
