package wizard

import (
	"strings"
	"testing"

	"github.com/tessro/unyo/internal/config"
)

func TestAnswersFrom(t *testing.T) {
	cfg := config.Default()
	a := AnswersFrom(cfg)
	if a.Latitude != "" || a.Longitude != "" {
		t.Errorf("AnswersFrom() coordinates = %q,%q, want empty without fixed location", a.Latitude, a.Longitude)
	}
	if a.Theme != "auto" {
		t.Errorf("AnswersFrom() Theme = %q, want auto", a.Theme)
	}

	cfg.Weather.Latitude = 52.52
	cfg.Weather.Longitude = 13.41
	a = AnswersFrom(cfg)
	if a.Latitude != "52.52" || a.Longitude != "13.41" {
		t.Errorf("AnswersFrom() coordinates = %q,%q, want 52.52,13.41", a.Latitude, a.Longitude)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		answers Answers
		wantErr string
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:    "fixed location",
			answers: Answers{City: " Berlin ", Latitude: "52.52", Longitude: "13.41", Theme: "dark", Power: true},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Weather.HasFixedLocation() || cfg.Weather.City != "Berlin" {
					t.Errorf("Weather = %+v", cfg.Weather)
				}
				if !cfg.Power.Enabled || cfg.Display.Theme != "dark" {
					t.Errorf("Power.Enabled = %v, Theme = %q", cfg.Power.Enabled, cfg.Display.Theme)
				}
			},
		},
		{
			name:    "empty coordinates geolocate",
			answers: Answers{Theme: "auto"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Weather.HasFixedLocation() {
					t.Error("HasFixedLocation() = true, want false")
				}
				if cfg.Bluetooth.DeviceName != config.Default().Bluetooth.DeviceName {
					t.Errorf("DeviceName = %q, want default kept", cfg.Bluetooth.DeviceName)
				}
			},
		},
		{
			name:    "device name",
			answers: Answers{DeviceName: "Kitchen", Theme: "auto"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Bluetooth.DeviceName != "Kitchen" {
					t.Errorf("DeviceName = %q, want Kitchen", cfg.Bluetooth.DeviceName)
				}
			},
		},
		{name: "not a number", answers: Answers{Latitude: "north", Longitude: "1"}, wantErr: "latitude"},
		{name: "out of range", answers: Answers{Latitude: "1", Longitude: "200"}, wantErr: "longitude"},
		{name: "half a location", answers: Answers{Latitude: "1"}, wantErr: "together"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := tt.answers.Apply(cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Apply() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() after Apply() = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestPromptSetupDisabled(t *testing.T) {
	i := NewInteractive()
	i.SetEnabled(false)
	ran, err := i.PromptSetup(config.Default())
	if ran || err != nil {
		t.Errorf("PromptSetup() = %v, %v, want false, nil", ran, err)
	}
}
