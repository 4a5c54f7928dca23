package slog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/marijep/recipeimport"
)

// Ensure LoggingImporter implements recipeimport.Importer.
var _ recipeimport.Importer = (*LoggingImporter)(nil)

// LoggingImporter wraps an Importer with logging. Failures are logged at
// warn level with their error code.
type LoggingImporter struct {
	next   recipeimport.Importer
	logger *slog.Logger
}

// NewLoggingImporter creates a new LoggingImporter.
func NewLoggingImporter(next recipeimport.Importer, logger *slog.Logger) *LoggingImporter {
	return &LoggingImporter{next: next, logger: logger}
}

// Import delegates to the wrapped importer and logs the outcome.
func (i *LoggingImporter) Import(ctx context.Context, url string) (recipe json.RawMessage, err error) {
	defer func(begin time.Time) {
		if err != nil {
			i.logger.Warn("import",
				"url", url,
				"code", recipeimport.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		i.logger.Info("import",
			"url", url,
			"bytes", len(recipe),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return i.next.Import(ctx, url)
}
