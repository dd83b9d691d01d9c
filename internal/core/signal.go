package core

// SignalLevel is a discrete Wi-Fi signal band.
type SignalLevel int

const (
	NoSignal SignalLevel = iota
	Weak
	Fair
	Good
	Excellent
)

// ClassifySignal maps a 0-100 signal percentage to a SignalLevel.
// Values outside 0-100 map to NoSignal.
func ClassifySignal(percent int) SignalLevel {
	switch {
	case percent >= 1 && percent <= 25:
		return Weak
	case percent >= 26 && percent <= 50:
		return Fair
	case percent >= 51 && percent <= 75:
		return Good
	case percent >= 76 && percent <= 100:
		return Excellent
	default:
		return NoSignal
	}
}

// Bars returns the number of signal bars (0-4).
func (l SignalLevel) Bars() int {
	return int(l)
}

func (l SignalLevel) String() string {
	switch l {
	case Weak:
		return "weak"
	case Fair:
		return "fair"
	case Good:
		return "good"
	case Excellent:
		return "excellent"
	default:
		return "no signal"
	}
}

// MarshalText encodes the level as its name.
func (l SignalLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
