package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/unyo/internal/core"
	"github.com/tessro/unyo/internal/tui/styles"
)

// Info is the header strip: clock, date, signal and supply warnings.
type Info struct{}

// NewInfo creates a new Info component
func NewInfo() *Info {
	return &Info{}
}

// Render renders the header line.
func (i *Info) Render(now time.Time, signal core.SignalLevel, power core.PowerStatus, powerOK bool, width int) string {
	left := lipgloss.JoinHorizontal(lipgloss.Bottom,
		styles.Clock.Render(now.Format("15:04:05")),
		"  ",
		styles.Subtitle.Render(now.Format("Monday, 2 January 2006")),
	)

	right := styles.SignalBars(signal) + " " + styles.Dim.Render(signal.String())
	if powerOK && power.Undervoltage {
		right = styles.Alert.Render("⚡ undervoltage") + "  " + right
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(
		left + lipgloss.NewStyle().Width(gap).Render("") + right,
	)
}
