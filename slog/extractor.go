package slog

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/readable"
)

// Ensure LoggingExtractor implements readable.Extractor.
var _ readable.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs every extraction.
type LoggingExtractor struct {
	next   readable.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next readable.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string, baseURL *url.URL) (article *readable.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", baseURL.String(),
			"duration", time.Since(begin),
		}
		if article != nil {
			attrs = append(attrs, "title", article.Title, "bytes", len(article.Content))
		}
		if err != nil {
			e.logger.Warn("extract", append(attrs, "err", err)...)
			return
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html, baseURL)
}
