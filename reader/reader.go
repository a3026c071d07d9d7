// Package reader implements the request pipeline of the reading view:
// parse the target URL, fetch it, extract the article, and render the
// result or a styled error page.
package reader

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/static"
)

// TimeLayout formats the retrieval time shown under the article title,
// e.g. "Monday, January  5, 2024, 14:03:22".
const TimeLayout = "Monday, January _2, 2006, 15:04:05"

// Reading is an article extracted from a target URL.
type Reading struct {
	URL         *url.URL
	Article     *readable.Article
	RetrievedAt time.Time
}

// Service turns request paths into reading views.
//
// Service holds no per-request state and is safe for concurrent use as long
// as its collaborators are.
type Service struct {
	Fetcher   readable.Fetcher
	Extractor readable.Extractor

	// Sanitizer cleans extracted content before it is embedded.
	// Optional; content is embedded as extracted when nil.
	Sanitizer readable.Sanitizer

	// Converter renders articles as Markdown for HandleMarkdown.
	Converter readable.Converter

	// Now returns the current local time. Defaults to time.Now.
	Now func() time.Time
}

// Read parses raw as the target URL, fetches it, and extracts the article.
// Fetch failures are reported as EFETCH or EDECODE, extraction and
// sanitizing failures as EEXTRACT.
func (s *Service) Read(ctx context.Context, raw string) (*Reading, error) {
	target, err := ParseTarget(raw)
	if err != nil {
		return nil, err
	}

	doc, err := s.Fetcher.Fetch(ctx, target.String())
	if err != nil {
		return nil, ensureCode(err, readable.EFETCH, readable.EDECODE)
	}

	article, err := s.Extractor.Extract(doc, target)
	if err != nil {
		return nil, ensureCode(err, readable.EEXTRACT)
	} else if article == nil {
		return nil, readable.Errorf(readable.EEXTRACT, "no article content found")
	}

	if s.Sanitizer != nil {
		content, err := s.Sanitizer.Sanitize(article.Content, target)
		if err != nil {
			return nil, ensureCode(err, readable.EEXTRACT)
		}
		cleaned := *article
		cleaned.Content = content
		article = &cleaned
	}

	if article.Title == "" {
		titled := *article
		titled.Title = target.Hostname()
		article = &titled
	}

	return &Reading{
		URL:         target,
		Article:     article,
		RetrievedAt: s.now(),
	}, nil
}

// Handle serves the reading view for a request path.
//
// Exactly one leading slash is stripped from path. An empty remainder
// renders the home page. Every other outcome is a rendered article (200)
// or a rendered error page whose status depends on the failure.
func (s *Service) Handle(ctx context.Context, path string) (int, string) {
	raw := strings.TrimPrefix(path, "/")
	if raw == "" {
		return http.StatusOK, IndexPage()
	}

	r, err := s.Read(ctx, raw)
	if err != nil {
		return ErrorPage(err)
	}

	return http.StatusOK, static.Render(
		html.EscapeString(r.Article.Title),
		Header(r),
		r.Article.Content,
		r.URL.String(),
	)
}

// Header builds the line shown under the article title: a link to the
// original page, the byline if known, and the retrieval time.
func Header(r *Reading) string {
	u := html.EscapeString(r.URL.String())
	var b strings.Builder
	fmt.Fprintf(&b, `A readable version of <a class="shortened" href="%s">%s</a>`, u, u)
	if r.Article.Byline != "" {
		fmt.Fprintf(&b, " by %s", html.EscapeString(r.Article.Byline))
	}
	fmt.Fprintf(&b, "<br />retrieved on %s", r.RetrievedAt.Format(TimeLayout))
	return b.String()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ensureCode returns err unchanged if it carries one of the allowed codes.
// Otherwise the message is kept under the first allowed code, so failures
// of a pipeline step are always reported as that step's failure kind.
func ensureCode(err error, allowed ...string) error {
	code := readable.ErrorCode(err)
	for _, c := range allowed {
		if code == c {
			return err
		}
	}
	return readable.Errorf(allowed[0], "%s", readable.ErrorMessage(err))
}
