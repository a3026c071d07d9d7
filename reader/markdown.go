package reader

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/readable"
)

// HandleMarkdown is the Markdown twin of Handle, for clients that
// prefer Markdown. It returns the same status codes as Handle.
func (s *Service) HandleMarkdown(ctx context.Context, path string) (int, string) {
	raw := strings.TrimPrefix(path, "/")
	if raw == "" {
		return http.StatusOK, IndexMarkdown()
	}

	r, err := s.Read(ctx, raw)
	if err != nil {
		return ErrorMarkdown(err)
	}

	if s.Converter == nil {
		return ErrorMarkdown(readable.Errorf(readable.EINTERNAL, "markdown output is not configured"))
	}
	body, err := s.Converter.Convert(r.Article.Content)
	if err != nil {
		return ErrorMarkdown(ensureCode(err, readable.EINTERNAL))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Article.Title)
	fmt.Fprintf(&b, "A readable version of <%s>", r.URL)
	if r.Article.Byline != "" {
		fmt.Fprintf(&b, " by %s", r.Article.Byline)
	}
	fmt.Fprintf(&b, ", retrieved on %s\n\n", r.RetrievedAt.Format(TimeLayout))
	b.WriteString(body)
	b.WriteString("\n")
	return http.StatusOK, b.String()
}

// ErrorMarkdown is the Markdown form of ErrorPage.
func ErrorMarkdown(err error) (int, string) {
	f := lookupFailure(err)
	return f.status, fmt.Sprintf("# %s\n\n%s\n\n%s%s\n", f.title, f.header, f.prefix, readable.ErrorMessage(err))
}

// IndexMarkdown is the Markdown form of IndexPage.
func IndexMarkdown() string {
	return "# Readable.\n\nAppend any URL to the address bar to get started.\n\n" +
		"For example: /https://en.wikipedia.org/wiki/Alan_Turing\n"
}
