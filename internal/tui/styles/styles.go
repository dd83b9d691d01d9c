package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/unyo/internal/core"
)

// Colors adapt to the terminal background.
var (
	Primary   = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#7C3AED"} // Purple
	Secondary = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"} // Green

	Success = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"}
	Warning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	Error   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"}
	Info    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#3B82F6"}

	Border    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	Text      = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	TextMuted = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	TextDim   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Clock = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextMuted)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(Success)

	Paused = lipgloss.NewStyle().
		Foreground(Warning)

	Alert = lipgloss.NewStyle().
		Bold(true).
		Foreground(Error)
)

// Border styles
var (
	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
)

// ApplyTheme forces a light or dark palette. "auto" keeps terminal detection.
func ApplyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// Panel returns the bordered panel style.
func Panel() lipgloss.Style {
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string) string {
	return Label.Render(" " + title + " ")
}

// StatusIcon returns an icon for playback status
func StatusIcon(state core.PlaybackState) string {
	switch state {
	case core.Playing:
		return Playing.Render("▶")
	case core.Paused:
		return Paused.Render("⏸")
	default:
		return Dim.Render("■")
	}
}

// SignalBars renders a four-step signal meter.
func SignalBars(level core.SignalLevel) string {
	const steps = "▂▄▆█"
	bars := []rune(steps)
	n := level.Bars()

	style := Playing
	switch {
	case n == 0:
		return Alert.Render("✗") + Dim.Render(string(bars))
	case n == 1:
		style = Alert
	case n == 2:
		style = Paused
	}
	return style.Render(string(bars[:n])) + Dim.Render(string(bars[n:]))
}

// Repeat repeats a string n times
func Repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
