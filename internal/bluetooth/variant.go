package bluetooth

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	uerrors "github.com/tessro/unyo/internal/errors"
)

// Properties is the property map of one interface on one object.
type Properties = map[string]dbus.Variant

// DecodeError reports a property that was present but of the wrong type.
// Absence is never a DecodeError.
type DecodeError struct {
	Path  dbus.ObjectPath
	Field string
	Want  string
	Got   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s %s: want %s, got %s", e.Path, e.Field, e.Want, e.Got)
}

func (e *DecodeError) Unwrap() error {
	return uerrors.ErrDecode
}

func mismatch(field, want string, v dbus.Variant) *DecodeError {
	return &DecodeError{Field: field, Want: want, Got: v.Signature().String()}
}

// decodeString returns props[key] as a string, def when absent.
func decodeString(props Properties, key, def string) (string, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	s, ok := v.Value().(string)
	if !ok {
		return "", mismatch(key, "s", v)
	}
	return s, nil
}

// decodeUint32 returns props[key] as a uint32, def when absent.
func decodeUint32(props Properties, key string, def uint32) (uint32, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	n, ok := v.Value().(uint32)
	if !ok {
		return 0, mismatch(key, "u", v)
	}
	return n, nil
}

// decodeUint16 returns props[key] as a uint16 and whether it was usable.
func decodeUint16(props Properties, key string) (uint16, bool, error) {
	v, ok := props[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := v.Value().(uint16)
	if !ok {
		return 0, false, mismatch(key, "q", v)
	}
	return n, true, nil
}

// decodeDict returns props[key] as a nested a{sv}. Absent yields an empty map.
func decodeDict(props Properties, key string) (Properties, error) {
	v, ok := props[key]
	if !ok {
		return Properties{}, nil
	}
	d, ok := v.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, mismatch(key, "a{sv}", v)
	}
	return d, nil
}

// decodeShuffle reads the Shuffle property. Absence and the "off" sentinel
// count as disabled; any other value, string or not, counts as enabled.
func decodeShuffle(props Properties) bool {
	v, ok := props["Shuffle"]
	if !ok {
		return false
	}
	s, ok := v.Value().(string)
	return !ok || s != "off"
}
