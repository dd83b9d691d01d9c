package core

// PowerStatus reports the supply state read from the firmware.
type PowerStatus struct {
	Undervoltage bool   `json:"undervoltage"`
	Raw          string `json:"raw"`
}
