package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"bookstalk/internal/types"
)

// Session is a scoped headless-browser session. The crawler creates one per
// crawl call and must release it with Close on every exit path.
type Session struct {
	browser *rod.Browser
	timeout time.Duration
	stealth bool
	logger  *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithStealth enables stealth page patches for sites that block headless
// browsers.
func WithStealth() SessionOption {
	return func(s *Session) { s.stealth = true }
}

// WithTimeout sets the per-navigation timeout.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.timeout = d }
}

// NewSession launches a headless Chromium instance and connects to it.
func NewSession(logger *slog.Logger, opts ...SessionOption) (*Session, error) {
	s := &Session{
		timeout: 30 * time.Second,
		logger:  logger.With("component", "browser_session"),
	}
	for _, opt := range opts {
		opt(s)
	}

	launchURL, err := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	s.browser = browser
	s.logger.Debug("browser session ready", "stealth", s.stealth)
	return s, nil
}

// Render navigates to a URL and returns the rendered page HTML.
func (s *Session) Render(ctx context.Context, url string) (string, error) {
	var page *rod.Page
	var err error
	if s.stealth {
		page, err = stealth.Page(s.browser)
	} else {
		page, err = s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		return "", &types.FetchError{URL: url, Err: fmt.Errorf("open page: %w", err)}
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Timeout(s.timeout).Navigate(url); err != nil {
		return "", &types.FetchError{URL: url, Err: err}
	}

	if err := page.Timeout(s.timeout).WaitStable(300 * time.Millisecond); err != nil {
		s.logger.Warn("page stability timeout, continuing", "url", url, "error", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", &types.FetchError{URL: url, Err: err}
	}

	s.logger.Debug("page rendered", "url", url, "size", len(html))
	return html, nil
}

// Close shuts down the browser.
func (s *Session) Close() error {
	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}
