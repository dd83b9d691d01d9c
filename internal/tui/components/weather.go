package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/unyo/internal/core"
	"github.com/tessro/unyo/internal/tui/styles"
)

// hoursShown is how many hourly points fit the kiosk panel.
const hoursShown = 5

const rainChartHeight = 4

// Weather displays current conditions and the forecast.
type Weather struct{}

// NewWeather creates a new Weather component
func NewWeather() *Weather {
	return &Weather{}
}

// Render renders the weather panel
func (w *Weather) Render(snap core.WeatherSnapshot, ok bool, now time.Time, width, height int) string {
	title := styles.PanelTitle("Weather")

	var content string
	if !ok {
		content = styles.Muted.Render("Waiting for forecast…")
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left,
			w.renderCurrent(snap),
			"",
			w.renderHourly(snap),
			"",
			w.renderRainChart(snap, width-4),
			"",
			w.renderDaily(snap, now),
		)
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

func (w *Weather) renderCurrent(snap core.WeatherSnapshot) string {
	c := snap.Current
	header := fmt.Sprintf("%s %s", snap.CurrentCondition().Icon(), styles.Title.Render(fmt.Sprintf("%.1f°C", c.Temperature)))
	if snap.City != "" {
		header += "  " + styles.Subtitle.Render(snap.City)
	}
	detail := styles.Muted.Render(fmt.Sprintf("rain %.1f mm  clouds %d%%", c.Rain, c.CloudCover))
	return lipgloss.JoinVertical(lipgloss.Left, header, detail)
}

func (w *Weather) renderHourly(snap core.WeatherSnapshot) string {
	cols := make([]string, 0, hoursShown)
	for i := 0; i < hoursShown && i < len(snap.Hourly); i++ {
		h := snap.Hourly[i]
		cols = append(cols, lipgloss.NewStyle().Width(8).Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.Label.Render(h.Label),
			h.Condition().Icon(),
			fmt.Sprintf("%.0f°", h.Temperature),
		)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderRainChart draws one bar per forecast hour.
func (w *Weather) renderRainChart(snap core.WeatherSnapshot, width int) string {
	maxRain := 0.0
	for _, h := range snap.Hourly {
		maxRain = max(maxRain, h.Rain)
	}
	header := styles.Label.Render(fmt.Sprintf("Rain next %dh", len(snap.Hourly)))
	if maxRain == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, styles.Dim.Render("dry"))
	}
	header += styles.Dim.Render(fmt.Sprintf("  max %.1f mm", maxRain))

	gap := 1
	if width < 2*len(snap.Hourly) {
		gap = 0
	}
	chartWidth := min(width, len(snap.Hourly)*(1+gap))
	bc := barchart.New(chartWidth, rainChartHeight,
		barchart.WithBarGap(gap),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)

	bar := lipgloss.NewStyle().Foreground(styles.Primary).Background(styles.Primary)
	for _, h := range snap.Hourly {
		bc.Push(barchart.BarData{
			Values: []barchart.BarValue{{Name: h.Label, Value: h.Rain, Style: bar}},
		})
	}
	bc.Draw()

	return lipgloss.JoinVertical(lipgloss.Left, header, bc.View())
}

func (w *Weather) renderDaily(snap core.WeatherSnapshot, now time.Time) string {
	lines := make([]string, 0, len(snap.Daily))
	for i, d := range snap.Daily {
		day := now.AddDate(0, 0, i).Format("Mon")
		if i == 0 {
			day = "Today"
		}
		lines = append(lines, fmt.Sprintf("%-6s %s %5.1f°  UV %-4.1f %s",
			day,
			d.Condition().Icon(),
			d.MeanTemperature,
			d.UVIndexMax,
			styles.Dim.Render(fmt.Sprintf("%.1f mm  %s sun", d.RainSum, sunshine(d.SunshineDuration))),
		))
	}
	return strings.Join(lines, "\n")
}

func sunshine(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	return fmt.Sprintf("%dh%02d", int(d.Hours()), int(d.Minutes())%60)
}
