// Package slog provides logging decorators for webextract services.
package slog

import (
	"context"
	"log/slog"
	"time"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// Ensure LoggingFetcher implements webextract.Fetcher.
var _ webextract.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   webextract.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webextract.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *webextract.FetchResult, err error) {
	defer func(begin time.Time) {
		status := 0
		bytes := 0
		if result != nil {
			status = result.StatusCode
			bytes = len(result.HTML)
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
