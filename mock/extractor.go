package mock

import (
	"net/url"

	"github.com/fwojciec/readable"
)

var _ readable.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of readable.Extractor.
type Extractor struct {
	ExtractFn func(html string, baseURL *url.URL) (*readable.Article, error)
}

func (e *Extractor) Extract(html string, baseURL *url.URL) (*readable.Article, error) {
	return e.ExtractFn(html, baseURL)
}

var _ readable.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of readable.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string, baseURL *url.URL) (string, error)
}

func (s *Sanitizer) Sanitize(html string, baseURL *url.URL) (string, error) {
	return s.SanitizeFn(html, baseURL)
}
