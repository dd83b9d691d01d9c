package config

import (
	"os"
	"strings"
)

// ResolveDeviceName returns the advertised Bluetooth name. The trimmed
// contents of DeviceNameFile win when the file is readable and non-empty.
func (c BluetoothConfig) ResolveDeviceName() string {
	if c.DeviceNameFile != "" {
		if data, err := os.ReadFile(c.DeviceNameFile); err == nil {
			if name := strings.TrimSpace(string(data)); name != "" {
				return name
			}
		}
	}
	return c.DeviceName
}
