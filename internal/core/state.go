package core

import "time"

// PlaybackState represents the transport state reported by a media player.
type PlaybackState int

const (
	Stopped PlaybackState = iota
	Playing
	Paused
)

// ParsePlaybackState maps a player status string to a PlaybackState.
// Unrecognised values map to Stopped.
func ParsePlaybackState(s string) PlaybackState {
	switch s {
	case "playing":
		return Playing
	case "paused":
		return Paused
	default:
		return Stopped
	}
}

func (s PlaybackState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// MarshalText encodes the state as its lowercase name.
func (s PlaybackState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	// MaxTitleLen is the display width reserved for a track title.
	MaxTitleLen = 41
	// MaxArtistLen is the display width reserved for an artist name.
	MaxArtistLen = 20
)

// PlaybackSnapshot is one decoded read of the Bluetooth media player.
// Position is not clamped to Duration.
type PlaybackSnapshot struct {
	Title    string        `json:"title"`
	Artist   string        `json:"artist"`
	State    PlaybackState `json:"state"`
	Position uint32        `json:"position_ms"`
	Duration uint32        `json:"duration_ms"`
	Shuffle  bool          `json:"shuffle"`
	Volume   uint16        `json:"volume"`
}

// IsPlaying returns true if the player reports active playback.
func (s PlaybackSnapshot) IsPlaying() bool {
	return s.State == Playing
}

// Elapsed returns the playback position as a duration.
func (s PlaybackSnapshot) Elapsed() time.Duration {
	return time.Duration(s.Position) * time.Millisecond
}

// Total returns the track length as a duration.
func (s PlaybackSnapshot) Total() time.Duration {
	return time.Duration(s.Duration) * time.Millisecond
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s PlaybackSnapshot) ProgressPercent() float64 {
	if s.Duration == 0 {
		return 0
	}
	p := float64(s.Position) / float64(s.Duration) * 100
	if p > 100 {
		return 100
	}
	return p
}

// SameTrack reports whether two snapshots describe the same track.
func (s PlaybackSnapshot) SameTrack(o PlaybackSnapshot) bool {
	return s.Title == o.Title && s.Artist == o.Artist && s.Duration == o.Duration
}
