package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Bluetooth: BluetoothConfig{
			Interval:   350,
			Timeout:    2000,
			Service:    "org.bluez",
			DeviceName: "Raspi Audio Player",
		},
		WiFi: WiFiConfig{
			Interval: 15000,
			Timeout:  5000,
			Command:  "nmcli",
			Args:     []string{"-t", "-f", "ACTIVE,SIGNAL", "dev", "wifi"},
		},
		Weather: WeatherConfig{
			Interval: 10000,
			Timeout:  20000,
			BaseURL:  "https://api.open-meteo.com",
			GeoURL:   "http://ip-api.com/json/",
		},
		Power: PowerConfig{
			Enabled:  false,
			Interval: 60000,
			Timeout:  5000,
			Command:  "vcgencmd",
		},
		Display: DisplayConfig{
			FrameInterval: 200,
			Theme:         "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Bluetooth
	if c.Bluetooth.Interval == 0 {
		c.Bluetooth.Interval = d.Bluetooth.Interval
	}
	if c.Bluetooth.Timeout == 0 {
		c.Bluetooth.Timeout = d.Bluetooth.Timeout
	}
	if c.Bluetooth.Service == "" {
		c.Bluetooth.Service = d.Bluetooth.Service
	}
	if c.Bluetooth.DeviceName == "" {
		c.Bluetooth.DeviceName = d.Bluetooth.DeviceName
	}

	// WiFi
	if c.WiFi.Interval == 0 {
		c.WiFi.Interval = d.WiFi.Interval
	}
	if c.WiFi.Timeout == 0 {
		c.WiFi.Timeout = d.WiFi.Timeout
	}
	if c.WiFi.Command == "" {
		c.WiFi.Command = d.WiFi.Command
	}
	if len(c.WiFi.Args) == 0 {
		c.WiFi.Args = d.WiFi.Args
	}

	// Weather
	if c.Weather.Interval == 0 {
		c.Weather.Interval = d.Weather.Interval
	}
	if c.Weather.Timeout == 0 {
		c.Weather.Timeout = d.Weather.Timeout
	}
	if c.Weather.BaseURL == "" {
		c.Weather.BaseURL = d.Weather.BaseURL
	}
	if c.Weather.GeoURL == "" {
		c.Weather.GeoURL = d.Weather.GeoURL
	}

	// Power
	if c.Power.Interval == 0 {
		c.Power.Interval = d.Power.Interval
	}
	if c.Power.Timeout == 0 {
		c.Power.Timeout = d.Power.Timeout
	}
	if c.Power.Command == "" {
		c.Power.Command = d.Power.Command
	}

	// Display
	if c.Display.FrameInterval == 0 {
		c.Display.FrameInterval = d.Display.FrameInterval
	}
	if c.Display.Theme == "" {
		c.Display.Theme = d.Display.Theme
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
