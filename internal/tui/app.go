// Package tui provides the interactive Bubble Tea dashboard for a booking
// run. The run itself executes on one background goroutine that posts
// one-way messages (status, progress, per-date result, done, error) over a
// channel; the model only consumes.
package tui

import (
	"context"
	"fmt"
	"strings"

	"deskbooker/internal/booking"
	"deskbooker/internal/config"
	"deskbooker/internal/portal"
	"deskbooker/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusMsg carries a status line from the booking goroutine.
type statusMsg string

// progressMsg reports per-date progress.
type progressMsg struct {
	done  int
	total int
}

// resultMsg reports one date's outcome.
type resultMsg struct {
	date    string
	outcome booking.Outcome
}

// doneMsg is sent when the run finishes, whatever the outcome.
type doneMsg struct {
	report booking.RunReport
}

// errMsg carries a fatal run error.
type errMsg struct {
	err error
}

const maxStatusLog = 8

// App is the root Bubble Tea model.
type App struct {
	cfg          config.Config
	artifactsDir string
	th           theme.Theme

	// record is called with the finished report; nil disables history.
	record func(booking.RunReport, error)

	sub chan tea.Msg // messages from the booking goroutine

	running  bool
	finished bool

	spinner spinner.Model
	bar     progress.Model

	done, total int
	status      string
	statusLog   []string
	results     []resultMsg
	report      *booking.RunReport
	err         error

	width int
}

// NewApp creates the dashboard model.
func NewApp(cfg config.Config, prefs config.Prefs, record func(booking.RunReport, error)) App {
	th := theme.ByName(prefs.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(th.Accent)

	return App{
		cfg:          cfg,
		artifactsDir: prefs.General.ArtifactsDir,
		th:           th,
		record:       record,
		sub:          make(chan tea.Msg, 16),
		spinner:      sp,
		bar:          progress.New(progress.WithDefaultGradient()),
		status:       "Ready",
		width:        80,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w > 0 {
			a.bar.Width = w
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "s", "enter":
			if !a.running && !a.finished {
				a.running = true
				return a, a.startRun()
			}
		}
		return a, nil

	case spinner.TickMsg:
		if !a.running {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case statusMsg:
		a.status = string(msg)
		a.statusLog = append(a.statusLog, string(msg))
		if len(a.statusLog) > maxStatusLog {
			a.statusLog = a.statusLog[len(a.statusLog)-maxStatusLog:]
		}
		return a, a.waitForMsg()

	case progressMsg:
		a.done, a.total = msg.done, msg.total
		return a, a.waitForMsg()

	case resultMsg:
		a.results = append(a.results, msg)
		return a, a.waitForMsg()

	case doneMsg:
		a.running = false
		a.finished = true
		report := msg.report
		a.report = &report
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, a.waitForMsg()
	}

	return a, nil
}

func (a App) startRun() tea.Cmd {
	cfg := a.cfg
	artifactsDir := a.artifactsDir
	record := a.record
	sub := a.sub

	start := func() tea.Msg {
		go runBooking(sub, cfg, artifactsDir, record)
		return statusMsg("Starting browser...")
	}

	return tea.Batch(start, a.spinner.Tick)
}

func (a App) waitForMsg() tea.Cmd {
	sub := a.sub
	return func() tea.Msg {
		return <-sub
	}
}

// runBooking executes the whole run and posts messages to sub. It never
// blocks on the UI: sub is buffered and the model always re-subscribes.
func runBooking(sub chan tea.Msg, cfg config.Config, artifactsDir string, record func(booking.RunReport, error)) {
	ctx := context.Background()

	sess, err := portal.NewSession(ctx, portal.Options{
		Email:        cfg.Email,
		Password:     cfg.Password,
		Headless:     cfg.Headless,
		Location:     cfg.Location,
		Debug:        cfg.Debug,
		ArtifactsDir: artifactsDir,
	})
	if err != nil {
		sub <- errMsg{err}
		sub <- doneMsg{booking.RunReport{Location: cfg.Location, Results: map[string]bool{}}}
		return
	}
	defer sess.Close()

	ev := booking.Events{
		Status:   func(s string) { sub <- statusMsg(s) },
		Progress: func(done, total int) { sub <- progressMsg{done, total} },
		Result:   func(date string, o booking.Outcome) { sub <- resultMsg{date, o} },
	}

	report, err := booking.Run(ctx, sess, booking.Options{
		Location:   cfg.Location,
		Days:       cfg.Weekdays(),
		WeeksAhead: cfg.WeeksAhead,
	}, ev)

	if record != nil {
		record(report, err)
	}
	if err != nil {
		sub <- errMsg{err}
	}
	sub <- doneMsg{report}
}

func (a App) View() string {
	t := a.th
	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary)
	green := lipgloss.NewStyle().Foreground(t.Green)
	yellow := lipgloss.NewStyle().Foreground(t.Yellow)
	red := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(title.Render("  Desk Booker"))
	b.WriteString("\n\n")

	b.WriteString(label.Render("  Location:  ") + value.Render(a.cfg.Location) + "\n")
	b.WriteString(label.Render("  Days:      ") + value.Render(strings.Join(a.cfg.Days, ", ")) + "\n")
	b.WriteString(label.Render("  Weeks:     ") + value.Render(fmt.Sprintf("%d", a.cfg.WeeksAhead)) + "\n\n")

	switch {
	case a.running:
		b.WriteString("  " + a.spinner.View() + value.Render(a.status) + "\n\n")
	case a.finished:
		b.WriteString("  " + value.Render(a.status) + "\n\n")
	default:
		b.WriteString(label.Render("  Press s to start booking, q to quit") + "\n\n")
	}

	if a.total > 0 {
		frac := float64(a.done) / float64(a.total)
		b.WriteString("  " + a.bar.ViewAs(frac) + "\n")
		b.WriteString(label.Render(fmt.Sprintf("  %d/%d dates", a.done, a.total)) + "\n\n")
	}

	for _, r := range a.results {
		switch r.outcome {
		case booking.OutcomeBooked:
			b.WriteString("  " + green.Render("✓ "+r.date+"  booked") + "\n")
		case booking.OutcomeSkipped:
			b.WriteString("  " + yellow.Render("– "+r.date+"  already booked") + "\n")
		default:
			b.WriteString("  " + red.Render("✗ "+r.date+"  no desk found") + "\n")
		}
	}

	if a.running && len(a.statusLog) > 0 {
		b.WriteString("\n")
		for _, line := range a.statusLog {
			b.WriteString(label.Render("  "+line) + "\n")
		}
	}

	if a.report != nil {
		b.WriteString("\n" + value.Render(fmt.Sprintf("  Booked %d of %d dates",
			a.report.BookedCount(), len(a.report.Results))) + "\n")
	}

	if a.err != nil {
		b.WriteString("\n" + red.Render("  Error: "+a.err.Error()) + "\n")
	}

	b.WriteString("\n" + label.Render("  q quit") + "\n")
	return b.String()
}
