// Package dom inspects captured page HTML when the live selectors fail.
// It exists for diagnosis and last-resort decisions only; the primary path
// queries the live page.
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var successIndicators = []string{
	"Booking confirmed",
	"Successfully booked",
	"Reservation complete",
}

// ConfirmButtonLabels returns the text of every button mentioning a
// booking cost, for logging what the confirmation dialog actually shows.
func ConfirmButtonLabels(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var labels []string
	doc.Find("button").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if strings.Contains(text, "Book for") {
			labels = append(labels, text)
		}
	})
	return labels
}

// LocationCardTitles returns the card titles present on the booking page.
func LocationCardTitles(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var titles []string
	doc.Find(".card-title").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			titles = append(titles, t)
		}
	})
	return titles
}

// HasSuccessIndicator reports whether the page shows any known
// booking-success text or element.
func HasSuccessIndicator(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	if doc.Find(".booking-success").Length() > 0 {
		return true
	}
	body := doc.Text()
	for _, s := range successIndicators {
		if strings.Contains(body, s) {
			return true
		}
	}
	return false
}

// HasOpenDialog reports whether the booking dialog backdrop is still open.
func HasOpenDialog(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return doc.Find(".pageslide-backdrop.open").Length() > 0
}
