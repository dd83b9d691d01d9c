package tail

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/unyo/internal/core"
)

type eventKind struct {
	name  string
	emoji string
}

var eventKinds = map[EventType]eventKind{
	EventTrackChange:   {"track_change", "🎵"},
	EventTrackComplete: {"track_complete", "✅"},
	EventTrackSkip:     {"track_skip", "⏭️"},
	EventPause:         {"pause", "⏸️"},
	EventResume:        {"resume", "▶️"},
	EventVolumeChange:  {"volume_change", "🔊"},
	EventShuffleChange: {"shuffle_change", "🔀"},
	EventConnect:       {"connect", "🔗"},
	EventDisconnect:    {"disconnect", "📴"},
}

// String returns the snake_case event name used in templates.
func (t EventType) String() string {
	if k, ok := eventKinds[t]; ok {
		return k.name
	}
	return "unknown"
}

// Emoji returns the icon printed before the event.
func (t EventType) Emoji() string {
	if k, ok := eventKinds[t]; ok {
		return k.emoji
	}
	return "❓"
}

// Formatter turns events into lines of output.
type Formatter struct {
	emoji     bool
	timestamp bool
	tmpl      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji toggles the leading icon.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) { f.emoji = enabled }
}

// WithTimestamp toggles the HH:MM:SS prefix.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) { f.timestamp = enabled }
}

// WithTemplate replaces the default line with a text/template. An empty or
// unparsable template keeps the default; use ParseTemplate to report errors.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if t, err := ParseTemplate(tmpl); err == nil {
			f.tmpl = t
		}
	}
}

// ParseTemplate parses a --format template. It returns nil for "".
func ParseTemplate(tmpl string) (*template.Template, error) {
	if tmpl == "" {
		return nil, nil
	}
	t, err := template.New("format").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("invalid format template: %w", err)
	}
	return t, nil
}

// NewFormatter creates a formatter. Emoji are on by default.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{emoji: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders e as one line.
func (f *Formatter) Format(e Event) string {
	if f.tmpl != nil {
		var sb strings.Builder
		if err := f.tmpl.Execute(&sb, newTemplateData(e)); err == nil {
			return sb.String()
		}
	}

	var parts []string
	if f.timestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.emoji {
		parts = append(parts, e.Type.Emoji())
	}
	parts = append(parts, describe(e))
	return strings.Join(parts, " ")
}

// templateData is the value passed to --format templates.
type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Artist    string
	State     string
	Volume    uint16
	Shuffle   bool
	Position  string
	Duration  string
}

func newTemplateData(e Event) templateData {
	d := templateData{
		Type:      e.Type.String(),
		Emoji:     e.Type.Emoji(),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
	}
	if s := e.Snapshot(); s != nil {
		d.Title = s.Title
		d.Artist = s.Artist
		d.State = s.State.String()
		d.Volume = s.Volume
		d.Shuffle = s.Shuffle
		d.Position = formatMillis(s.Position)
		d.Duration = formatMillis(s.Duration)
	}
	return d
}

// Snapshot returns the snapshot an event is about: the current one, or the
// previous one when the player went away.
func (e Event) Snapshot() *core.PlaybackSnapshot {
	if e.Current != nil {
		return e.Current
	}
	return e.Previous
}

func formatMillis(ms uint32) string {
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func trackLine(s *core.PlaybackSnapshot) string {
	return s.Artist + " - " + s.Title
}

func describe(e Event) string {
	switch e.Type {
	case EventTrackChange:
		if e.Current != nil {
			return "Now playing: " + trackLine(e.Current)
		}
	case EventTrackComplete:
		if e.Previous != nil {
			return "Finished: " + trackLine(e.Previous)
		}
	case EventTrackSkip:
		if e.Previous != nil {
			return "Skipped: " + trackLine(e.Previous)
		}
	case EventPause:
		return "Paused"
	case EventResume:
		return "Resumed"
	case EventVolumeChange:
		if e.Current != nil {
			return fmt.Sprintf("Volume: %d", e.Current.Volume)
		}
	case EventShuffleChange:
		if e.Current != nil && e.Current.Shuffle {
			return "Shuffle on"
		}
		return "Shuffle off"
	case EventConnect:
		return "Player connected"
	case EventDisconnect:
		return "Player disconnected"
	}
	return strings.ReplaceAll(e.Type.String(), "_", " ")
}
