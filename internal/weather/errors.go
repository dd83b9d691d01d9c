package weather

import (
	"fmt"

	uerrors "github.com/tessro/unyo/internal/errors"
)

// FetchKind classifies a failed forecast fetch.
type FetchKind int

const (
	// KindNetwork covers connection failures and non-2xx responses.
	KindNetwork FetchKind = iota
	// KindFormat covers unparseable JSON and missing or malformed fields.
	KindFormat
)

func (k FetchKind) String() string {
	if k == KindFormat {
		return "format"
	}
	return "network"
}

// FetchError is returned by FetchForecast. It matches errors.ErrNetwork or
// errors.ErrFormat depending on Kind.
type FetchError struct {
	Kind FetchKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("weather %s error: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error {
	sentinel := uerrors.ErrNetwork
	if e.Kind == KindFormat {
		sentinel = uerrors.ErrFormat
	}
	return []error{sentinel, e.Err}
}

func networkError(err error) error {
	return &FetchError{Kind: KindNetwork, Err: err}
}

func formatError(format string, args ...any) error {
	return &FetchError{Kind: KindFormat, Err: fmt.Errorf(format, args...)}
}
