package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Bluetooth BluetoothConfig `toml:"bluetooth" json:"bluetooth"`
	WiFi      WiFiConfig      `toml:"wifi" json:"wifi"`
	Weather   WeatherConfig   `toml:"weather" json:"weather"`
	Power     PowerConfig     `toml:"power" json:"power"`
	Display   DisplayConfig   `toml:"display" json:"display"`
	Log       LogConfig       `toml:"log" json:"log"`
}

// BluetoothConfig holds media player polling settings.
type BluetoothConfig struct {
	Enabled        *bool  `toml:"enabled" json:"enabled"`
	Interval       int    `toml:"interval_ms" json:"interval_ms"`
	Timeout        int    `toml:"timeout_ms" json:"timeout_ms"`
	Service        string `toml:"service" json:"service"`
	DeviceName     string `toml:"device_name" json:"device_name"`
	DeviceNameFile string `toml:"device_name_file" json:"device_name_file"`
}

// WiFiConfig holds signal polling settings.
type WiFiConfig struct {
	Enabled  *bool    `toml:"enabled" json:"enabled"`
	Interval int      `toml:"interval_ms" json:"interval_ms"`
	Timeout  int      `toml:"timeout_ms" json:"timeout_ms"`
	Command  string   `toml:"command" json:"command"`
	Args     []string `toml:"args" json:"args"`
}

// WeatherConfig holds forecast and geolocation settings.
type WeatherConfig struct {
	Enabled   *bool   `toml:"enabled" json:"enabled"`
	Interval  int     `toml:"interval_s" json:"interval_s"`
	Timeout   int     `toml:"timeout_ms" json:"timeout_ms"`
	BaseURL   string  `toml:"base_url" json:"base_url"`
	GeoURL    string  `toml:"geo_url" json:"geo_url"`
	Latitude  float64 `toml:"latitude" json:"latitude"`
	Longitude float64 `toml:"longitude" json:"longitude"`
	City      string  `toml:"city" json:"city"`
}

// PowerConfig holds undervoltage polling settings.
type PowerConfig struct {
	Enabled  bool   `toml:"enabled" json:"enabled"`
	Interval int    `toml:"interval_ms" json:"interval_ms"`
	Timeout  int    `toml:"timeout_ms" json:"timeout_ms"`
	Command  string `toml:"command" json:"command"`
}

// DisplayConfig holds render loop settings.
type DisplayConfig struct {
	FrameInterval int    `toml:"frame_interval_ms" json:"frame_interval_ms"`
	Theme         string `toml:"theme" json:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}

func enabled(b *bool) bool {
	return b == nil || *b
}

// IsEnabled reports whether the Bluetooth poller should run. Defaults to true.
func (c BluetoothConfig) IsEnabled() bool { return enabled(c.Enabled) }

// IsEnabled reports whether the Wi-Fi poller should run. Defaults to true.
func (c WiFiConfig) IsEnabled() bool { return enabled(c.Enabled) }

// IsEnabled reports whether the weather poller should run. Defaults to true.
func (c WeatherConfig) IsEnabled() bool { return enabled(c.Enabled) }

// HasFixedLocation reports whether coordinates were configured explicitly.
func (c WeatherConfig) HasFixedLocation() bool {
	return c.Latitude != 0 || c.Longitude != 0
}

// IntervalDuration returns the poll interval.
func (c BluetoothConfig) IntervalDuration() time.Duration { return ms(c.Interval) }

// TimeoutDuration returns the per-call timeout.
func (c BluetoothConfig) TimeoutDuration() time.Duration { return ms(c.Timeout) }

// IntervalDuration returns the poll interval.
func (c WiFiConfig) IntervalDuration() time.Duration { return ms(c.Interval) }

// TimeoutDuration returns the per-call timeout.
func (c WiFiConfig) TimeoutDuration() time.Duration { return ms(c.Timeout) }

// IntervalDuration returns the poll interval.
func (c WeatherConfig) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// TimeoutDuration returns the per-call timeout.
func (c WeatherConfig) TimeoutDuration() time.Duration { return ms(c.Timeout) }

// IntervalDuration returns the poll interval.
func (c PowerConfig) IntervalDuration() time.Duration { return ms(c.Interval) }

// TimeoutDuration returns the per-call timeout.
func (c PowerConfig) TimeoutDuration() time.Duration { return ms(c.Timeout) }

// FrameDuration returns the render loop tick.
func (c DisplayConfig) FrameDuration() time.Duration { return ms(c.FrameInterval) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
