// Package http provides the HTTP transport of the service: a
// readable.Fetcher that downloads pages with net/http, and the Server and
// Router that expose the reading view.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/readable"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps the number of bytes read from a response.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent identifies the service to the sites it reads.
const DefaultUserAgent = "readable/1.0 (+https://github.com/fwojciec/readable)"

// Ensure Fetcher implements readable.Fetcher at compile time.
var _ readable.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests, including reading the body.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response size in bytes.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after %d redirects", len(via))
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the page at url and returns its body decoded to UTF-8.
//
// Transport failures and non-2xx responses return EFETCH. A body that
// cannot be read or decoded, or that is larger than the configured maximum,
// returns EDECODE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", readable.Errorf(readable.EFETCH, "%v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", readable.Errorf(readable.EFETCH, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", readable.Errorf(readable.EFETCH, "HTTP status %s for url (%s)", resp.Status, url)
	}

	body := http.MaxBytesReader(nil, resp.Body, f.maxBodySize)
	text, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", f.decodeError(err)
	}
	b, err := io.ReadAll(text)
	if err != nil {
		return "", f.decodeError(err)
	}

	return string(b), nil
}

func (f *Fetcher) decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return readable.Errorf(readable.EDECODE, "response body exceeds %d bytes", f.maxBodySize)
	}
	return readable.Errorf(readable.EDECODE, "%v", err)
}

// Close releases resources. For HTTP fetcher this only drops idle
// connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
