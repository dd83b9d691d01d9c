package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tessro/unyo/internal/core"
	"github.com/tessro/unyo/internal/tui/styles"
)

// HistoryEntry represents a track seen on the player
type HistoryEntry struct {
	Title    string
	Artist   string
	PlayedAt time.Time
}

// maxHistory bounds the number of remembered tracks.
const maxHistory = 20

// History tracks and displays recently played tracks
type History struct {
	entries []HistoryEntry
}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Observe records snap if it starts a different track than the last entry.
func (h *History) Observe(snap core.PlaybackSnapshot, at time.Time) {
	if len(h.entries) > 0 {
		last := h.entries[0]
		if last.Title == snap.Title && last.Artist == snap.Artist {
			return
		}
	}
	entry := HistoryEntry{Title: snap.Title, Artist: snap.Artist, PlayedAt: at}
	h.entries = append([]HistoryEntry{entry}, h.entries...)
	if len(h.entries) > maxHistory {
		h.entries = h.entries[:maxHistory]
	}
}

// Entries returns the remembered tracks, newest first.
func (h *History) Entries() []HistoryEntry {
	return h.entries
}

// Render renders the history panel
func (h *History) Render(width, height int) string {
	title := styles.PanelTitle("Recently Played")

	var content string
	if len(h.entries) == 0 {
		content = styles.Muted.Render("No history yet")
	} else {
		content = h.renderHistory(width-4, height-4)
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

func (h *History) renderHistory(width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	for i, entry := range h.entries {
		if i >= maxLines {
			break
		}

		timeAgo := humanize.Time(entry.PlayedAt)
		trackInfo := fmt.Sprintf("%s — %s", entry.Title, entry.Artist)

		// 2 for icon + space
		padding := width - 2 - lipgloss.Width(trackInfo) - len(timeAgo)
		if padding < 1 {
			padding = 1
		}

		line := fmt.Sprintf("%s %s%s%s",
			styles.Dim.Render("♪"),
			trackInfo,
			lipgloss.NewStyle().Width(padding).Render(""),
			styles.Dim.Render(timeAgo))

		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
