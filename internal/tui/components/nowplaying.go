package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/unyo/internal/core"
	"github.com/tessro/unyo/internal/tui/styles"
)

// NowPlaying displays the connected Bluetooth player
type NowPlaying struct {
	bar progress.Model
}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{
		bar: progress.New(
			progress.WithSolidFill(string(styles.Primary.Dark)),
			progress.WithoutPercentage(),
		),
	}
}

// Render renders the now playing panel. deviceName is shown while no player
// is connected.
func (n *NowPlaying) Render(snap core.PlaybackSnapshot, ok bool, deviceName string, width, height int) string {
	title := styles.PanelTitle("Now Playing")

	var content string
	if !ok {
		content = lipgloss.JoinVertical(lipgloss.Left,
			styles.Muted.Render("No player connected"),
			styles.Dim.Render("Pair with "+deviceName),
		)
	} else {
		content = n.renderTrack(snap, width-4)
	}

	panel := styles.Panel().
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (n *NowPlaying) renderTrack(snap core.PlaybackSnapshot, width int) string {
	icon := styles.StatusIcon(snap.State)
	title := styles.Title.Width(width - 4).Render(snap.Title)
	artist := styles.Subtitle.Render(snap.Artist)

	// Account for times on either side
	progressWidth := width - 14
	if progressWidth < 10 {
		progressWidth = 10
	}
	n.bar.Width = progressWidth
	bar := n.bar.ViewAs(snap.ProgressPercent() / 100)
	progressLine := fmt.Sprintf("%s %s %s", formatDuration(snap.Elapsed()), bar, formatDuration(snap.Total()))

	extras := fmt.Sprintf("🔊 %d", snap.Volume)
	if snap.Shuffle {
		extras += "  🔀"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"",
		progressLine,
		"",
		styles.Muted.Render(extras),
	)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
