package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// restarted.
const DefaultMaxPages = 100

// BrowserManager owns a headless Chrome process and restarts it after a
// fixed number of pages. Chrome's resident memory grows with every page it
// renders and does not shrink back, so a long-running server restarts it.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	userAgent string
	maxPages  int64
	pageCount atomic.Int64
	closed    atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages are rendered before a restart.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithBrowserUserAgent sets the User-Agent the browser sends.
func WithBrowserUserAgent(ua string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.userAgent = ua
	}
}

// NewBrowserManager launches the browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()
	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// Browser returns the running browser, restarting it first when the page
// budget is used up. Returns nil after Close.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed.Load() {
		return nil
	}
	if bm.pageCount.Load() >= bm.maxPages {
		bm.restart()
	}
	return bm.browser
}

// IncrementPageCount records one rendered page.
func (bm *BrowserManager) IncrementPageCount() {
	bm.pageCount.Add(1)
}

// Close stops the browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.shutdown()
}

// LauncherPID returns the process ID of the browser launcher, or 0 when no
// browser is running.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// launch must be called with mu held.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if bm.userAgent != "" {
		l = l.Set("user-agent", bm.userAgent)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
}

// shutdown must be called with mu held.
func (bm *BrowserManager) shutdown() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// restart swaps in a fresh browser. The old one keeps serving if the new
// one fails to launch. Must be called with mu held.
func (bm *BrowserManager) restart() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	if err := bm.launch(); err != nil {
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.pageCount.Store(0)
}
