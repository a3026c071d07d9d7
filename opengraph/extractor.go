// Package opengraph fills gaps in extracted article metadata from the
// OpenGraph tags of the page.
package opengraph

import (
	"net/url"
	"strings"

	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/fwojciec/readable"
)

// Ensure Extractor implements readable.Extractor at compile time.
var _ readable.Extractor = (*Extractor)(nil)

// Extractor wraps another Extractor and, when the wrapped extractor returns
// an article without a title or site name, takes them from og:title and
// og:site_name. Fields already set by the wrapped extractor are kept.
type Extractor struct {
	next readable.Extractor
}

// NewExtractor creates a new Extractor delegating to next.
func NewExtractor(next readable.Extractor) *Extractor {
	return &Extractor{next: next}
}

// Extract delegates to the wrapped extractor and completes the metadata.
func (e *Extractor) Extract(rawHTML string, baseURL *url.URL) (*readable.Article, error) {
	article, err := e.next.Extract(rawHTML, baseURL)
	if err != nil {
		return nil, err
	}
	if article.Title != "" && article.SiteName != "" {
		return article, nil
	}

	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(rawHTML)); err != nil {
		// Metadata is optional; the article itself is fine.
		return article, nil
	}

	out := *article
	if out.Title == "" {
		out.Title = strings.TrimSpace(og.Title)
	}
	if out.SiteName == "" {
		out.SiteName = strings.TrimSpace(og.SiteName)
	}
	return &out, nil
}
