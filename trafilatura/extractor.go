// Package trafilatura implements readable.Extractor with go-trafilatura.
// It copes better than readability with pages that mix several short
// sections, at the cost of looser markup.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/readable"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements readable.Extractor at compile time.
var _ readable.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main article from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article.
// baseURL is passed to trafilatura as the original URL of the page.
func (e *Extractor) Extract(rawHTML string, baseURL *url.URL) (*readable.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readable.Errorf(readable.EEXTRACT, "empty HTML document")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), options(baseURL))
	if err != nil {
		return nil, readable.Errorf(readable.EEXTRACT, "%v", err)
	}
	return articleFromResult(result)
}

func options(baseURL *url.URL) trafilatura.Options {
	return trafilatura.Options{
		OriginalURL:    baseURL,
		EnableFallback: true,
	}
}

// articleFromResult maps an extraction result to an Article. A result
// without a content node or text means trafilatura found no article.
func articleFromResult(result *trafilatura.ExtractResult) (*readable.Article, error) {
	if result == nil || result.ContentNode == nil || strings.TrimSpace(result.ContentText) == "" {
		return nil, readable.Errorf(readable.EEXTRACT, "no article content found")
	}

	content, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, readable.Errorf(readable.EEXTRACT, "rendering content: %v", err)
	}

	return &readable.Article{
		Title:    strings.TrimSpace(result.Metadata.Title),
		Content:  content,
		Byline:   strings.TrimSpace(result.Metadata.Author),
		SiteName: strings.TrimSpace(result.Metadata.Sitename),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
