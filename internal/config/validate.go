package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Bluetooth.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("bluetooth: %w", err))
	}
	if err := c.WiFi.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("wifi: %w", err))
	}
	if err := c.Weather.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("weather: %w", err))
	}
	if err := c.Power.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("power: %w", err))
	}
	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks BluetoothConfig for errors.
func (c *BluetoothConfig) Validate() error {
	if c.Interval < 0 {
		return errors.New("interval_ms must be non-negative")
	}
	if c.Timeout < 0 {
		return errors.New("timeout_ms must be non-negative")
	}
	return nil
}

// Validate checks WiFiConfig for errors.
func (c *WiFiConfig) Validate() error {
	if c.Interval < 0 {
		return errors.New("interval_ms must be non-negative")
	}
	if c.Timeout < 0 {
		return errors.New("timeout_ms must be non-negative")
	}
	return nil
}

// Validate checks WeatherConfig for errors.
func (c *WeatherConfig) Validate() error {
	if c.Interval < 0 {
		return errors.New("interval_s must be non-negative")
	}
	if c.Timeout < 0 {
		return errors.New("timeout_ms must be non-negative")
	}
	for name, raw := range map[string]string{"base_url": c.BaseURL, "geo_url": c.GeoURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid %s: scheme must be http or https", name)
		}
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// Validate checks PowerConfig for errors.
func (c *PowerConfig) Validate() error {
	if c.Interval < 0 {
		return errors.New("interval_ms must be non-negative")
	}
	if c.Timeout < 0 {
		return errors.New("timeout_ms must be non-negative")
	}
	return nil
}

// Validate checks DisplayConfig for errors.
func (c *DisplayConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	if c.FrameInterval < 0 {
		return errors.New("frame_interval_ms must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
