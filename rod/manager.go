// Package rod drives a live Chrome page: it opens the document, snapshots
// its rendered markup, reports changes and clicks its load-more control.
package rod

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserManager owns a Chrome process and the pages opened in it.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser     *rod.Browser
	launcher    *launcher.Launcher
	headless    bool
	userDataDir string
	bin         string
	retryDelays []time.Duration
	logger      *slog.Logger
	mu          sync.Mutex
	closed      atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithHeadless sets whether Chrome runs without a window. Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithUserDataDir sets the Chrome profile directory so that a signed-in
// session survives between runs.
func WithUserDataDir(dir string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.userDataDir = dir
	}
}

// WithBin sets the Chrome binary. By default rod finds or downloads one.
func WithBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// WithRetryDelays sets the backoff between navigation attempts in Open.
// Defaults to DefaultRetryDelays; nil disables retries.
func WithRetryDelays(delays []time.Duration) ManagerOption {
	return func(bm *BrowserManager) {
		bm.retryDelays = delays
	}
}

// WithManagerLogger sets the logger for navigation retries.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(bm *BrowserManager) {
		bm.logger = logger
	}
}

// NewBrowserManager launches Chrome. Close must be called when the manager
// is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		headless:    true,
		retryDelays: DefaultRetryDelays(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launchBrowser(); err != nil {
		return nil, err
	}

	return bm, nil
}

// Open creates a page, navigates it to url and waits for the load event.
// Failed navigations are retried with backoff.
func (bm *BrowserManager) Open(ctx context.Context, url string) (*rod.Page, error) {
	var page *rod.Page
	err := retry(ctx, bm.retryDelays, func() error {
		p, err := bm.open(ctx, url)
		page = p
		return err
	}, func(attempt int, err error) {
		bm.logger.Warn("retrying navigation", "url", url, "attempt", attempt, "err", err)
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (bm *BrowserManager) open(ctx context.Context, url string) (*rod.Page, error) {
	bm.mu.Lock()
	browser := bm.browser
	bm.mu.Unlock()
	if browser == nil {
		return nil, fmt.Errorf("browser closed")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}

	p := page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("waiting for %s: %w", url, err)
	}

	return page, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

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

// LauncherPID returns the process ID of the browser launcher.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// launchBrowser starts Chrome with flags that keep background pages
// rendering at full speed.
func (bm *BrowserManager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(bm.headless)
	if bm.userDataDir != "" {
		lnchr = lnchr.UserDataDir(bm.userDataDir)
	}
	if bm.bin != "" {
		lnchr = lnchr.Bin(bm.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	return nil
}
