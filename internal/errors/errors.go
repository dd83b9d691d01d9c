package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrIPC            = errors.New("ipc bus unavailable")
	ErrDecode         = errors.New("decode error")
	ErrNetwork        = errors.New("network error")
	ErrFormat         = errors.New("malformed response")
	ErrLocation       = errors.New("location unavailable")
	ErrCommand        = errors.New("command failed")
	ErrTimeout        = errors.New("request timeout")
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// UnyoError wraps an error with a user-friendly suggestion.
type UnyoError struct {
	Err        error
	Suggestion string
}

func (e *UnyoError) Error() string {
	return e.Err.Error()
}

func (e *UnyoError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &UnyoError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var unyoErr *UnyoError
	if errors.As(err, &unyoErr) && unyoErr.Suggestion != "" {
		return unyoErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrIPC) || strings.Contains(errStr, "dbus") ||
		strings.Contains(errStr, "system bus") {
		return "Check that bluetoothd is running and the user may access the system bus"
	}

	if errors.Is(err, ErrLocation) {
		return "Set weather.latitude, weather.longitude and weather.city in the config to skip IP lookup"
	}

	if errors.Is(err, ErrCommand) || strings.Contains(errStr, "executable file not found") {
		return "Check that the command is installed and on PATH (wifi.command defaults to nmcli, power.command to vcgencmd)"
	}

	if errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "timeout") || strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	if errors.Is(err, ErrFormat) {
		return "A source returned output in an unexpected format; check weather.base_url, or power.command if undervoltage polling is on"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Run 'unyo config init' to create a configuration file"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
