package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/readable"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements readable.Fetcher at compile time.
var _ readable.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page load when the caller's context
// has no earlier deadline.
const DefaultFetchTimeout = 10 * time.Second

// Fetcher retrieves rendered HTML from URLs using headless Chrome, for
// pages that build their article with JavaScript.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	closed       atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	fetchTimeout time.Duration
	managerOpts  []ManagerOption
}

// WithFetchTimeout sets the maximum time a single Fetch may take.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.fetchTimeout = d
	}
}

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) FetcherOption {
	return func(c *fetcherConfig) {
		c.managerOpts = append(c.managerOpts, opts...)
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher
// backed by it. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	cfg := fetcherConfig{fetchTimeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(cfg.managerOpts...)
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		manager:      manager,
		fetchTimeout: cfg.fetchTimeout,
	}, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered document. All failures are reported as EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", readable.Errorf(readable.EFETCH, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", readable.Errorf(readable.EFETCH, "%v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	browser := f.manager.Browser()
	if browser == nil {
		return "", readable.Errorf(readable.EFETCH, "browser is not running")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", readable.Errorf(readable.EFETCH, "opening page: %v", err)
	}
	defer func() { _ = page.Close() }()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", readable.Errorf(readable.EFETCH, "%v", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", readable.Errorf(readable.EFETCH, "%v", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", readable.Errorf(readable.EFETCH, "reading rendered page: %v", err)
	}
	return html, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// It exists so tests can verify the process is cleaned up.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
