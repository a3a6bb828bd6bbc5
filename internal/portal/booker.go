package portal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"deskbooker/internal/booking"
	"deskbooker/internal/portal/dom"

	"github.com/chromedp/chromedp"
)

var (
	locationPickerSelectors = []string{
		`[data-testid="location-selector"]`,
		`.location-dropdown`,
		`//button[contains(., "Select location")]`,
		`//button[contains(., "Choose location")]`,
		`[aria-label*="location" i]`,
	}

	locationSearchSelectors = []string{
		`input[placeholder*="search" i]`,
		`input[type="search"]`,
		`.location-search input`,
	}

	dateFieldSelectors = []string{
		`//fieldset[contains(., "Date")]`,
		`[class*="date-picker"]`,
		`[class*="datepicker"]`,
		`//button[contains(., "Today")]`,
		`[aria-label*="date" i]`,
		`input[type="date"]`,
	}

	calendarIconSelectors = []string{
		`[class*="calendar-icon"]`,
		`[class*="icon-calendar"]`,
		`svg`,
	}

	nextMonthSelectors = []string{
		`[aria-label*="next" i]`,
		`[aria-label*="forward" i]`,
		`//button[normalize-space(text())=">"]`,
		`[class*="next"]`,
		`[class*="forward"]`,
	}

	doneSelectors = []string{
		`//button[contains(., "Done")]`,
		`//*[@role="button"][contains(., "Done")]`,
		`//span[contains(., "Done")]`,
		`//*[contains(@class, "btn")][contains(., "Done")]`,
	}

	fallbackConfirmSelectors = []string{
		`//button[contains(., "Confirm")]`,
		`//button[contains(., "Book now")]`,
		`//button[contains(., "Complete")]`,
	}
)

const (
	confirmButtonXPath = `//button[contains(., "Book for")]`
	cancelButtonXPath  = `//button[contains(., "Cancel")]`
)

// SelectLocation picks the configured location from the picker if the page
// shows one. A missing picker is success: the location may be pre-selected
// on the account.
func (s *Session) SelectLocation(ctx context.Context, location string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.log.Infof("Selecting location: %s", location)

	if _, ok := s.clickFirst(locationPickerSelectors, 2*time.Second); !ok {
		s.log.Info("Location selector not found, may be pre-configured")
		return nil
	}
	_ = s.runTimeout(3*time.Second, chromedp.Sleep(time.Second))

	if sel, ok := s.fillFirst(locationSearchSelectors, location, 2*time.Second); ok {
		s.log.Debugf("Searched location via selector: %s", sel)
		_ = s.runTimeout(3*time.Second, chromedp.Sleep(time.Second))
	}

	optionXPath := fmt.Sprintf(`//*[normalize-space(text())=%s]`, xpathString(location))
	if _, ok := s.clickFirst([]string{optionXPath}, 5*time.Second); !ok {
		return fmt.Errorf("location option %q not found", location)
	}

	_ = s.runTimeout(5*time.Second, chromedp.Sleep(time.Second))
	s.log.Infof("Selected location: %s", location)
	return nil
}

// BookDate attempts to reserve a desk for one date: select the date in the
// calendar, reveal and click the location card's book button, then apply
// the credit-cost rule in the confirmation dialog.
func (s *Session) BookDate(ctx context.Context, date time.Time) (booking.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return booking.OutcomeNotFound, err
	}

	key := booking.DateKey(date)
	s.log.Infof("Attempting to book desk for %s, %s", date.Weekday(), key)

	s.captureArtifacts("debug_booking_" + key)

	if !s.selectDate(date) {
		s.log.Warnf("Could not select date %s in calendar", key)
	}

	if !s.selectDesk() {
		s.log.Warnf("No available desks found for %s", key)
		return booking.OutcomeNotFound, nil
	}

	outcome := s.confirmBooking()
	if outcome == booking.OutcomeBooked {
		s.log.Infof("Successfully booked desk for %s, %s", date.Weekday(), key)
	}
	return outcome, nil
}

// selectDate opens the date picker, advances to the target month, and
// clicks the day cell. Failures are logged; the booking flow continues
// regardless because the calendar may already show the right date.
func (s *Session) selectDate(date time.Time) bool {
	day := date.Day()
	monthShort := date.Format("Jan")
	monthFull := date.Format("January")
	year := date.Year()

	s.log.Debugf("Selecting date: %d %s %d", day, monthFull, year)

	if sel, ok := s.clickFirst(dateFieldSelectors, 2*time.Second); ok {
		s.log.Debugf("Opened date field via selector: %s", sel)
		_ = s.runTimeout(3*time.Second, chromedp.Sleep(time.Second))
	} else if _, ok := s.clickFirst(calendarIconSelectors, 2*time.Second); ok {
		s.log.Debug("Clicked calendar icon")
		_ = s.runTimeout(2*time.Second, chromedp.Sleep(400*time.Millisecond))
	}

	s.screenshot("debug_calendar.png")
	_ = s.runTimeout(time.Second, chromedp.Sleep(200*time.Millisecond))

	// Advance at most six months until the target month/year shows up.
	for i := 0; i < 6; i++ {
		html, err := s.pageHTML()
		if err != nil {
			break
		}
		if (strings.Contains(html, monthFull) || strings.Contains(html, monthShort)) &&
			strings.Contains(html, strconv.Itoa(year)) {
			s.log.Debugf("Found target month %s %d in page", monthFull, year)
			break
		}
		if _, ok := s.clickFirst(nextMonthSelectors, 2*time.Second); !ok {
			break
		}
		_ = s.runTimeout(time.Second, chromedp.Sleep(200*time.Millisecond))
	}

	// Click the grid cell whose text is exactly the day number, so "25"
	// does not match "25 desks".
	js := fmt.Sprintf(`(() => {
		const want = %q;
		const els = document.querySelectorAll('[role="gridcell"], button');
		for (const el of els) {
			if (((el.innerText || '').trim()) === want) {
				el.click();
				return true;
			}
		}
		return false;
	})()`, strconv.Itoa(day))

	var clicked bool
	if err := s.runTimeout(3*time.Second, chromedp.Evaluate(js, &clicked)); err == nil && clicked {
		_ = s.runTimeout(time.Second, chromedp.Sleep(400*time.Millisecond))
		s.log.Infof("Selected date: %d %s", day, monthFull)
		return true
	}

	// aria-label fallback, e.g. aria-label="November 26, 2025".
	ariaSelectors := []string{
		fmt.Sprintf(`[aria-label*="%d"]`, day),
		fmt.Sprintf(`[aria-label*="%s"]`, date.Format("January 02, 2006")),
	}
	if _, ok := s.clickFirst(ariaSelectors, 2*time.Second); ok {
		_ = s.runTimeout(time.Second, chromedp.Sleep(400*time.Millisecond))
		s.log.Infof("Selected date via aria-label: %d %s", day, monthFull)
		return true
	}

	return false
}

// selectDesk finds the configured location's card and clicks its book
// button. The button only renders on hover, so the card gets a synthetic
// mouseenter before the click.
func (s *Session) selectDesk() bool {
	location := s.opts.Location
	s.log.Debugf("Looking for location: %s", location)

	cardXPath := fmt.Sprintf(`//*[contains(@class, "card-title")][contains(., %s)]`, xpathString(location))
	if err := s.runTimeout(15*time.Second, chromedp.WaitVisible(cardXPath, chromedp.BySearch)); err != nil {
		if err := s.runTimeout(10*time.Second,
			chromedp.WaitVisible(`.location-card .card-title`, chromedp.ByQuery)); err != nil {
			s.log.Debug("Location cards not found, proceeding anyway")
		}
	} else {
		s.log.Debugf("Found location card for: %s", location)
	}

	s.screenshot("debug_location_search.png")

	js := fmt.Sprintf(`(() => {
		const location = %q;
		const cards = document.querySelectorAll('.location-card');
		for (const card of cards) {
			if (!(card.innerText || '').includes(location)) continue;
			card.dispatchEvent(new MouseEvent('mouseenter', {bubbles: true}));
			const btn = card.querySelector('.book-desk-button');
			if (btn) { btn.click(); return 'button'; }
			const role = card.querySelector('[role="button"]');
			if (role) { role.click(); return 'role'; }
			card.click();
			return 'card';
		}
		return '';
	})()`, location)

	var how string
	if err := s.runTimeout(5*time.Second, chromedp.Evaluate(js, &how)); err != nil || how == "" {
		if html, herr := s.pageHTML(); herr == nil {
			titles := dom.LocationCardTitles(html)
			s.log.Debugf("Location cards on page: %v", titles)
		}
		s.log.Warnf("Could not find location: %s", location)
		return false
	}
	s.log.Infof("Clicked 'Book a desk' (%s)", how)

	// Wait for the confirmation dialog to appear.
	if err := s.runTimeout(5*time.Second,
		chromedp.WaitVisible(confirmButtonXPath, chromedp.BySearch)); err != nil {
		_ = s.runTimeout(time.Second, chromedp.Sleep(500*time.Millisecond))
	}
	s.screenshot("debug_after_book_click.png")
	return true
}

// confirmBooking applies the credit-cost rule to the confirmation dialog:
// confirm only when the booking costs zero credits; a non-zero cost means a
// desk is already reserved for that date, so cancel instead.
func (s *Session) confirmBooking() booking.Outcome {
	_ = s.runTimeout(time.Second, chromedp.Sleep(500*time.Millisecond))
	s.screenshot("debug_confirm_dialog.png")

	var label string
	err := s.runTimeout(5*time.Second,
		chromedp.Text(confirmButtonXPath, &label, chromedp.BySearch, chromedp.NodeVisible))
	if err == nil {
		s.log.Debugf("Found confirmation button: %s", label)

		if credits, ok := booking.ParseCreditCost(label); ok {
			s.log.Infof("Booking would cost %d credits", credits)

			if credits > 0 {
				s.log.Infof("Booking costs %d credits - desk already booked for this date, skipping", credits)
				s.closeDialog()
				return booking.OutcomeSkipped
			}

			s.log.Info("Booking is free (0 credits), confirming...")
			if _, ok := s.clickFirst([]string{confirmButtonXPath}, 3*time.Second); !ok {
				s.log.Warn("Confirmation button vanished before click")
				s.closeDialog()
				return booking.OutcomeNotFound
			}

			s.log.Debug("Waiting for confirmation popup...")
			_ = s.runTimeout(3*time.Second, chromedp.Sleep(1500*time.Millisecond))
			s.screenshot("debug_after_confirm.png")

			if _, ok := s.clickFirst(doneSelectors, 5*time.Second); ok {
				_ = s.runTimeout(2*time.Second, chromedp.Sleep(time.Second))
				s.log.Info("Clicked 'Done' button, booking confirmed")
				return booking.OutcomeBooked
			}

			s.log.Debug("Done button not found, checking for success indicators...")
			if html, herr := s.pageHTML(); herr == nil {
				if dom.HasSuccessIndicator(html) {
					s.log.Info("Booking confirmed (success indicator found)")
					return booking.OutcomeBooked
				}
				if !dom.HasOpenDialog(html) {
					s.log.Info("Booking dialog closed - assuming success")
					return booking.OutcomeBooked
				}
			}
			// The confirm click went through; treat the booking as made.
			return booking.OutcomeBooked
		}
	}

	// No "Book for N credit" button: try generic confirm buttons.
	s.log.Debug("Looking for fallback confirm button...")
	if sel, ok := s.clickFirst(fallbackConfirmSelectors, 3*time.Second); ok {
		s.log.Infof("Confirmed via fallback selector: %s", sel)
		_ = s.runTimeout(3*time.Second, chromedp.Sleep(2*time.Second))
		return booking.OutcomeBooked
	}

	if html, herr := s.pageHTML(); herr == nil {
		labels := dom.ConfirmButtonLabels(html)
		s.log.Debugf("Confirmation buttons on page: %v", labels)
	}

	s.closeDialog()
	return booking.OutcomeNotFound
}

// closeDialog clicks Cancel if a dialog is open, so the next date starts
// from a clean page.
func (s *Session) closeDialog() {
	if _, ok := s.clickFirst([]string{cancelButtonXPath}, 2*time.Second); ok {
		_ = s.runTimeout(time.Second, chromedp.Sleep(400*time.Millisecond))
	}
}

// xpathString quotes s for embedding in an XPath expression. XPath 1.0 has
// no escaping, so strings containing both quote kinds use concat().
func xpathString(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
