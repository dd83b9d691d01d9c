package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tessro/unyo/internal/config"
)

// ErrCancelled is returned when the user aborts the setup form.
var ErrCancelled = errors.New("setup cancelled")

// Answers holds the values collected by the setup form. Coordinates are
// kept as text so an empty field can mean "locate by IP".
type Answers struct {
	City       string
	Latitude   string
	Longitude  string
	DeviceName string
	Power      bool
	Theme      string
}

// AnswersFrom seeds the form with the values already in cfg.
func AnswersFrom(cfg *config.Config) Answers {
	a := Answers{
		City:       cfg.Weather.City,
		DeviceName: cfg.Bluetooth.DeviceName,
		Power:      cfg.Power.Enabled,
		Theme:      cfg.Display.Theme,
	}
	if cfg.Weather.HasFixedLocation() {
		a.Latitude = strconv.FormatFloat(cfg.Weather.Latitude, 'f', -1, 64)
		a.Longitude = strconv.FormatFloat(cfg.Weather.Longitude, 'f', -1, 64)
	}
	if a.Theme == "" {
		a.Theme = "auto"
	}
	return a
}

// Apply writes the answers into cfg. Empty coordinates clear any fixed
// location so the weather poller falls back to IP geolocation.
func (a Answers) Apply(cfg *config.Config) error {
	lat, err := parseCoordinate(a.Latitude, 90)
	if err != nil {
		return fmt.Errorf("latitude: %w", err)
	}
	lon, err := parseCoordinate(a.Longitude, 180)
	if err != nil {
		return fmt.Errorf("longitude: %w", err)
	}
	if (a.Latitude == "") != (a.Longitude == "") {
		return errors.New("latitude and longitude must be set together")
	}

	cfg.Weather.Latitude = lat
	cfg.Weather.Longitude = lon
	cfg.Weather.City = strings.TrimSpace(a.City)
	if name := strings.TrimSpace(a.DeviceName); name != "" {
		cfg.Bluetooth.DeviceName = name
	}
	cfg.Power.Enabled = a.Power
	cfg.Display.Theme = a.Theme
	return nil
}

func parseCoordinate(s string, limit float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if f < -limit || f > limit {
		return 0, fmt.Errorf("must be between %g and %g", -limit, limit)
	}
	return f, nil
}

func coordinateValidator(limit float64) func(string) error {
	return func(s string) error {
		_, err := parseCoordinate(s, limit)
		return err
	}
}

// NewSetupForm builds the setup form bound to a.
func NewSetupForm(a *Answers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Location").
				Description("Leave the coordinates empty to locate the kiosk by its public IP."),
			huh.NewInput().
				Title("City").
				Placeholder("Berlin").
				Value(&a.City),
			huh.NewInput().
				Title("Latitude").
				Placeholder("52.52").
				Validate(coordinateValidator(90)).
				Value(&a.Latitude),
			huh.NewInput().
				Title("Longitude").
				Placeholder("13.41").
				Validate(coordinateValidator(180)).
				Value(&a.Longitude),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Bluetooth name").
				Description("Shown on screen while no phone is connected").
				Value(&a.DeviceName),
			huh.NewConfirm().
				Title("Monitor undervoltage?").
				Description("Requires vcgencmd (Raspberry Pi)").
				Affirmative("Yes").
				Negative("No").
				Value(&a.Power),
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions("auto", "dark", "light")...).
				Value(&a.Theme),
		),
	).WithTheme(huh.ThemeCatppuccin())
}

// RunSetup runs the setup form and applies the answers to cfg.
func RunSetup(cfg *config.Config) error {
	answers := AnswersFrom(cfg)
	if err := NewSetupForm(&answers).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	return answers.Apply(cfg)
}
