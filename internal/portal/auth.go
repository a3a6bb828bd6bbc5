package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// splashSelector matches the SPA's loading overlays.
const splashSelector = `.splash-screen, #splash-logo, .loader`

// The portal is a JS-heavy single-page app; every selector here is a guess
// the site can invalidate, so each is one entry in a fallback list.
var (
	emailSelectors = []string{
		`input[type="email"]`,
		`input[name="email"]`,
		`input[id="email"]`,
		`input[placeholder*="email" i]`,
		`input[autocomplete="email"]`,
		`input[name="username"]`,
		`input[id="username"]`,
		`input[type="text"]`,
		`input`,
	}

	continueSelectors = []string{
		`button[type="submit"]`,
		`//button[contains(., "Continue")]`,
		`//button[contains(., "Next")]`,
		`input[type="submit"]`,
	}

	signInSelectors = []string{
		`button[type="submit"]`,
		`//button[contains(., "Sign in")]`,
		`//button[contains(., "Log in")]`,
		`//button[contains(., "Login")]`,
		`input[type="submit"]`,
	}
)

// Login signs in to the member portal. It succeeds when the final URL no
// longer contains "login"; an unrecoverable failure aborts the whole run.
func (s *Session) Login(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.log.Info("Navigating to login page...")
	if err := s.runTimeout(60*time.Second,
		chromedp.Navigate(loginURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("opening login page: %w", err)
	}

	s.log.Info("Waiting for page content to load...")
	s.dismissBlockers()
	s.waitSplashGone(30 * time.Second)

	// The landing page shows a "Member log in" button before the form.
	s.log.Info("Waiting for Member log in button...")
	s.screenshot("debug_before_click.png")
	if _, ok := s.clickFirst([]string{`//button[contains(., "Member log in")]`}, 30*time.Second); ok {
		s.log.Info("Clicked Member log in button")
		_ = s.runTimeout(5*time.Second, chromedp.Sleep(3*time.Second))
	} else {
		s.log.Debug("Member log in button not found, may already be on login form")
	}

	s.screenshot("debug_login_page.png")

	s.log.Info("Looking for email input field...")
	emailSel, ok := s.fillFirst(emailSelectors, s.opts.Email, 5*time.Second)
	if !ok {
		s.dumpHTML("debug_page_content.html")
		return fmt.Errorf("could not find email input field")
	}
	s.log.Debugf("Filled email via selector: %s", emailSel)

	if _, ok := s.clickFirst(continueSelectors, 3*time.Second); ok {
		_ = s.runTimeout(5*time.Second, chromedp.Sleep(2*time.Second))
	}

	s.log.Info("Entering password...")
	passwordSel := `input[type="password"], input[name="password"], input[id="password"]`
	if err := s.runTimeout(10*time.Second,
		chromedp.WaitVisible(passwordSel, chromedp.ByQuery),
		chromedp.SendKeys(passwordSel, s.opts.Password, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("could not find password input field: %w", err)
	}

	if _, ok := s.clickFirst(signInSelectors, 3*time.Second); !ok {
		s.log.Debug("No sign-in button found, relying on form submit")
	}

	// Let the SPA process the login and redirect.
	_ = s.runTimeout(10*time.Second, chromedp.Sleep(5*time.Second))

	url, err := s.currentURL()
	if err != nil {
		return fmt.Errorf("reading post-login URL: %w", err)
	}
	if strings.Contains(strings.ToLower(url), "login") {
		return fmt.Errorf("still on login page: %s", url)
	}

	s.log.Info("Login successful")
	return nil
}

// OpenDeskBooking navigates to the desk booking page.
func (s *Session) OpenDeskBooking(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.log.Info("Navigating to desk booking page...")
	if err := s.runTimeout(60*time.Second,
		chromedp.Navigate(bookingURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
	); err != nil {
		return fmt.Errorf("opening desk booking page: %w", err)
	}
	s.log.Info("On desk booking page")
	return nil
}

// dismissBlockers pokes the page to clear focus traps and overlays the SPA
// sometimes shows before the landing content.
func (s *Session) dismissBlockers() {
	_ = s.runTimeout(10*time.Second,
		chromedp.Sleep(2*time.Second),
		chromedp.KeyEvent(kb.Enter),
		chromedp.Sleep(time.Second),
		chromedp.KeyEvent(kb.Escape),
		chromedp.Sleep(time.Second),
	)
	_ = s.runTimeout(2*time.Second, chromedp.Click("body", chromedp.ByQuery))
}

// waitSplashGone polls until the splash/loading overlay is absent or hidden.
func (s *Session) waitSplashGone(timeout time.Duration) {
	var gone bool
	err := s.runTimeout(timeout, chromedp.Poll(
		fmt.Sprintf(`!document.querySelector(%q) || document.querySelector(%q).offsetParent === null`,
			splashSelector, splashSelector),
		&gone,
	))
	if err != nil {
		s.log.Debug("Splash screen wait timed out, proceeding")
	}
}

// fillFirst fills the first visible selector with the given text.
func (s *Session) fillFirst(selectors []string, text string, per time.Duration) (string, bool) {
	for _, sel := range selectors {
		err := s.runTimeout(per,
			chromedp.WaitVisible(sel, queryOption(sel)),
			chromedp.SendKeys(sel, text, queryOption(sel)),
		)
		if err == nil {
			return sel, true
		}
	}
	return "", false
}
