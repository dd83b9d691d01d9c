package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.unyorc, $XDG_CONFIG_HOME/unyo/config.toml, ~/.config/unyo/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultPath returns the path `config init` writes to.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".unyorc"
	}
	return filepath.Join(home, ".unyorc")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".unyorc"),
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "unyo", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Bluetooth
	if v := os.Getenv("UNYO_BLUETOOTH_INTERVAL_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Bluetooth.Interval = i
		}
	}
	if v := os.Getenv("UNYO_BLUETOOTH_DEVICE_NAME"); v != "" {
		cfg.Bluetooth.DeviceName = v
	}

	// WiFi
	if v := os.Getenv("UNYO_WIFI_COMMAND"); v != "" {
		cfg.WiFi.Command = v
	}
	if v := os.Getenv("UNYO_WIFI_INTERVAL_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.WiFi.Interval = i
		}
	}

	// Weather
	if v := os.Getenv("UNYO_WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("UNYO_WEATHER_GEO_URL"); v != "" {
		cfg.Weather.GeoURL = v
	}
	if v := os.Getenv("UNYO_WEATHER_LATITUDE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weather.Latitude = f
		}
	}
	if v := os.Getenv("UNYO_WEATHER_LONGITUDE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weather.Longitude = f
		}
	}
	if v := os.Getenv("UNYO_WEATHER_CITY"); v != "" {
		cfg.Weather.City = v
	}

	// Power
	if v := os.Getenv("UNYO_POWER_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Power.Enabled = b
		}
	}

	// Log
	if v := os.Getenv("UNYO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("UNYO_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
