package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/tasanda/ceu"
)

// Ensure LoggingProcessor implements ceu.Processor.
var _ ceu.Processor = (*LoggingProcessor)(nil)

// LoggingProcessor wraps a Processor with logging.
type LoggingProcessor struct {
	next   ceu.Processor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next ceu.Processor, logger *slog.Logger) *LoggingProcessor {
	return &LoggingProcessor{next: next, logger: logger}
}

// Process delegates to the wrapped processor and logs the outcome.
// Failed results are logged at warn level.
func (p *LoggingProcessor) Process(ctx context.Context, html, url, provider string) *ceu.ProcessingResult {
	begin := time.Now()
	result := p.next.Process(ctx, html, url, provider)

	attrs := []any{
		"url", url,
		"provider", provider,
		"success", result.Success,
		"duration", time.Since(begin),
	}
	if result.Meta != nil {
		attrs = append(attrs, "confidence", result.Meta.OverallConfidence)
	}
	if !result.Success {
		p.logger.Warn("process", append(attrs, "err", result.Error)...)
		return result
	}
	p.logger.Info("process", attrs...)
	return result
}
