// Package readability implements readable.Extractor with go-readability,
// a port of Mozilla's Readability.js.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/readable"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements readable.Extractor at compile time.
var _ readable.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main article from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article. Links and images in
// the content are made absolute using baseURL.
func (e *Extractor) Extract(rawHTML string, baseURL *url.URL) (*readable.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readable.Errorf(readable.EEXTRACT, "empty HTML document")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), baseURL)
	if err != nil {
		return nil, readable.Errorf(readable.EEXTRACT, "%v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, readable.Errorf(readable.EEXTRACT, "no article content found")
	}

	return &readable.Article{
		Title:    strings.TrimSpace(article.Title),
		Content:  article.Content,
		Byline:   strings.TrimSpace(article.Byline),
		SiteName: strings.TrimSpace(article.SiteName),
	}, nil
}
