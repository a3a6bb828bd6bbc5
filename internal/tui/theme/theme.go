// Package theme holds the TUI color palettes.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is one named color palette.
type Theme struct {
	Name string

	TextPrimary lipgloss.Color
	TextMuted   lipgloss.Color
	Accent      lipgloss.Color
	Green       lipgloss.Color
	Yellow      lipgloss.Color
	Red         lipgloss.Color
}

// All lists the available themes; the first is the default.
var All = []Theme{
	{
		Name:        "dark",
		TextPrimary: lipgloss.Color("#FFFCF0"),
		TextMuted:   lipgloss.Color("#6F6E69"),
		Accent:      lipgloss.Color("#3AA99F"),
		Green:       lipgloss.Color("#879A39"),
		Yellow:      lipgloss.Color("#D0A215"),
		Red:         lipgloss.Color("#D14D41"),
	},
	{
		Name:        "light",
		TextPrimary: lipgloss.Color("#100F0F"),
		TextMuted:   lipgloss.Color("#878580"),
		Accent:      lipgloss.Color("#24837B"),
		Green:       lipgloss.Color("#66800B"),
		Yellow:      lipgloss.Color("#AD8301"),
		Red:         lipgloss.Color("#AF3029"),
	},
}

// ByName returns the named theme, falling back to the default.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return All[0]
}
