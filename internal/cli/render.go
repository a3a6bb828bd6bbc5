// Package cli renders booking run reports and history for the terminal.
package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"deskbooker/internal/booking"
	"deskbooker/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

var (
	okLabel      = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel    = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()

	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// OutcomeLabel returns the colored per-date status word. Skipped and
// not-found both report as failure; the detail column says which.
func OutcomeLabel(o booking.Outcome) string {
	switch o {
	case booking.OutcomeBooked:
		return okLabel("OK")
	case booking.OutcomeSkipped:
		return failLabel("FAILED") + " " + skippedLabel("(already booked)")
	default:
		return failLabel("FAILED") + " " + skippedLabel("(no desk found)")
	}
}

// RenderRunReport formats one run's per-date results and the summary line.
func RenderRunReport(report booking.RunReport) string {
	var b strings.Builder

	details := append([]booking.DateResult(nil), report.Details...)
	sort.Slice(details, func(i, j int) bool { return details[i].Date < details[j].Date })

	for _, d := range details {
		fmt.Fprintf(&b, "  %s: %s\n", d.Date, OutcomeLabel(d.Outcome))
	}

	fmt.Fprintf(&b, "\nBooking complete: %d/%d successful\n",
		report.BookedCount(), len(report.Results))
	return b.String()
}

// RenderHistory formats recorded runs, newest first, with optional per-date
// detail rows.
func RenderHistory(runs []store.Run, resultsFor func(runID int64) []store.RunResult) string {
	if len(runs) == 0 {
		return mutedStyle.Render("No recorded runs.") + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-4s  %-19s  %-24s  %s", "ID", "Started", "Location", "Booked")))
	b.WriteString("\n")

	for _, r := range runs {
		summary := fmt.Sprintf("%d/%d", r.Booked, r.Total)
		if r.Error != "" {
			summary += "  " + failLabel(r.Error)
		}
		fmt.Fprintf(&b, "  %-4d  %-19s  %-24s  %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(r.Location, 24),
			summary,
		)

		if resultsFor == nil {
			continue
		}
		for _, rr := range resultsFor(r.ID) {
			status := okLabel("OK")
			if !rr.Booked {
				status = failLabel("FAILED") + " " + skippedLabel("("+rr.Outcome+")")
			}
			fmt.Fprintf(&b, "        %s  %s\n", rr.Date, status)
		}
	}
	return b.String()
}

// RenderDates formats the computed target dates for the dates command.
func RenderDates(location string, days []string, weeksAhead int, dates []time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Location: %s\n", location)
	fmt.Fprintf(&b, "Booking days: %s\n", strings.Join(days, ", "))
	fmt.Fprintf(&b, "Weeks ahead: %d\n\n", weeksAhead)
	b.WriteString("Dates to book:\n")
	for _, d := range dates {
		fmt.Fprintf(&b, "  %s, %s\n", d.Weekday(), booking.DateKey(d))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
