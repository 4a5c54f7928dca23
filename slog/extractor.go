package slog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/marijep/recipeimport"
)

// Ensure LoggingExtractor implements recipeimport.Extractor.
var _ recipeimport.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   recipeimport.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next recipeimport.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, pageURL, pageText string) (reply json.RawMessage, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"url", pageURL,
			"chars", len([]rune(pageText)),
			"reply_bytes", len(reply),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, pageURL, pageText)
}
