// Package portal drives the WeWork member portal in a real browser. Every
// step is best-effort: selectors the site may change at any time are tried
// in fallback order, failures are logged, and the caller gets a boolean or
// a three-way outcome rather than a hard error.
package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"deskbooker/internal/logging"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

const (
	loginURL   = "https://members.wework.com/workplaceone/content2/login"
	bookingURL = "https://members.wework.com/workplaceone/content2/bookings/desks"

	viewportWidth  = 1280
	viewportHeight = 800
)

// Options configures a browser session.
type Options struct {
	Email    string
	Password string
	Headless bool
	Location string

	// Debug writes screenshots and HTML dumps to ArtifactsDir.
	Debug        bool
	ArtifactsDir string
}

// Session owns one Chrome process and one page, and implements
// booking.Portal against the member portal.
type Session struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
	opts        Options
	log         *logrus.Logger
}

// NewSession launches the browser and prepares the page viewport.
func NewSession(parent context.Context, opts Options) (*Session, error) {
	log := logging.Log
	log.Info("Starting browser...")

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.WindowSize(viewportWidth, viewportHeight),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(ctx,
		network.Enable(),
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
	); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	log.Info("Browser started successfully")
	return &Session{
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		opts:        opts,
		log:         log,
	}, nil
}

// Close shuts down the page and the browser process.
func (s *Session) Close() {
	s.log.Info("Closing browser...")
	s.cancelCtx()
	s.cancelAlloc()
	s.log.Info("Browser closed")
}

// Hold keeps the browser open for the given duration. Used by the
// interactive login test so the user can verify the session.
func (s *Session) Hold(d time.Duration) {
	_ = chromedp.Run(s.ctx, chromedp.Sleep(d))
}

// runTimeout runs actions against the page with a step-level deadline.
func (s *Session) runTimeout(d time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, d)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// clickFirst tries each selector in order and clicks the first one that is
// visible within the per-selector timeout. Selectors starting with "//" are
// XPath, everything else is a CSS query. Returns the selector that matched.
func (s *Session) clickFirst(selectors []string, per time.Duration) (string, bool) {
	for _, sel := range selectors {
		err := s.runTimeout(per, chromedp.Click(sel, queryOption(sel), chromedp.NodeVisible))
		if err == nil {
			s.log.Debugf("Clicked selector: %s", sel)
			return sel, true
		}
	}
	return "", false
}

// pageHTML captures the current page markup.
func (s *Session) pageHTML() (string, error) {
	var html string
	err := s.runTimeout(5*time.Second, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// currentURL returns the page location.
func (s *Session) currentURL() (string, error) {
	var url string
	err := s.runTimeout(5*time.Second, chromedp.Location(&url))
	return url, err
}

func queryOption(sel string) chromedp.QueryOption {
	if strings.HasPrefix(sel, "//") {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}
