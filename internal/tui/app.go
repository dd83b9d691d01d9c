package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tessro/unyo/internal/core"
	"github.com/tessro/unyo/internal/state"
	"github.com/tessro/unyo/internal/tui/components"
	"github.com/tessro/unyo/internal/tui/styles"
)

// Source is what the render loop reads each frame. *state.Cache satisfies it.
type Source interface {
	Bluetooth() (core.PlaybackSnapshot, bool)
	Signal() core.SignalLevel
	Weather() (core.WeatherSnapshot, bool)
	Power() (core.PowerStatus, bool)
	Ages() state.Ages
}

// App holds the kiosk settings
type App struct {
	source        Source
	frameInterval time.Duration
	deviceName    string
}

// NewApp creates a new kiosk application
func NewApp(source Source, frameInterval time.Duration, deviceName string) *App {
	if frameInterval <= 0 {
		frameInterval = 200 * time.Millisecond
	}
	return &App{
		source:        source,
		frameInterval: frameInterval,
		deviceName:    deviceName,
	}
}

// frame is one point-in-time read of every slot. It is rebuilt on every
// tick and never carried over.
type frame struct {
	now        time.Time
	playback   core.PlaybackSnapshot
	playing    bool
	signal     core.SignalLevel
	weather    core.WeatherSnapshot
	hasWeather bool
	power      core.PowerStatus
	hasPower   bool
	ages       state.Ages
}

// Model is the main TUI model
type Model struct {
	app    *App
	width  int
	height int

	frame frame

	// Components
	info       *components.Info
	nowPlaying *components.NowPlaying
	weather    *components.Weather
	history    *components.History

	showHelp bool
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	return Model{
		app:        app,
		info:       components.NewInfo(),
		nowPlaying: components.NewNowPlaying(),
		weather:    components.NewWeather(),
		history:    components.NewHistory(),
	}
}

// Messages
type tickMsg time.Time

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) read(now time.Time) frame {
	src := m.app.source
	f := frame{now: now, signal: src.Signal(), ages: src.Ages()}
	f.playback, f.playing = src.Bluetooth()
	f.weather, f.hasWeather = src.Weather()
	f.power, f.hasPower = src.Power()
	return f
}

// Init starts the frame clock
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.frame = m.read(time.Time(msg))
		if m.frame.playing {
			m.history.Observe(m.frame.playback, m.frame.now)
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "esc":
		m.showHelp = false
	}
	return m, nil
}

// View renders the kiosk
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 || m.frame.now.IsZero() {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	// Header, then two columns:
	// Left: Now Playing (top), History (bottom)
	// Right: Weather
	f := m.frame
	header := m.info.Render(f.now, f.signal, f.power, f.hasPower, m.width)

	bodyHeight := m.height - 3
	leftWidth := m.width * 50 / 100
	rightWidth := m.width - leftWidth - 2
	topHeight := bodyHeight * 55 / 100
	bottomHeight := bodyHeight - topHeight - 2

	nowPlaying := m.nowPlaying.Render(f.playback, f.playing, m.app.deviceName, leftWidth-2, topHeight-2)
	history := m.history.Render(leftWidth-2, bottomHeight-2)
	weather := m.weather.Render(f.weather, f.hasWeather, f.now, rightWidth-2, bodyHeight-4)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, history)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, weather)

	return lipgloss.JoinVertical(lipgloss.Left, header, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	ages := m.frame.ages
	status := styles.Dim.Render("q:quit  ?:help  ·  media " + age(ages.Bluetooth, m.frame.now) +
		"  wifi " + age(ages.Signal, m.frame.now) +
		"  weather " + age(ages.Weather, m.frame.now))

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

// age renders how long ago a slot was written.
func age(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func (m Model) renderHelp() string {
	title := "unyo - Kiosk"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  q, Ctrl+C    Quit
  ?            Toggle help

  Panels refresh on their own schedule:
  media is polled over D-Bus, Wi-Fi via nmcli,
  weather from Open-Meteo.

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

// Run starts the kiosk and blocks until the user quits or ctx is done.
func Run(ctx context.Context, app *App) error {
	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
