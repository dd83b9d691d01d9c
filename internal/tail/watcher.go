package tail

import (
	"context"
	"time"

	"github.com/tessro/unyo/internal/core"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventTrackComplete
	EventTrackSkip
	EventPause
	EventResume
	EventVolumeChange
	EventShuffleChange
	EventConnect
	EventDisconnect
)

// Event represents a playback state change. A nil snapshot means no player
// was connected.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *core.PlaybackSnapshot
	Current   *core.PlaybackSnapshot
}

// Source is read once per tick. *state.Cache satisfies it.
type Source interface {
	Bluetooth() (core.PlaybackSnapshot, bool)
}

// Watcher samples a Source and emits events for the differences.
type Watcher struct {
	source   Source
	interval time.Duration
	events   chan Event
}

// NewWatcher creates a new state watcher.
func NewWatcher(source Source, interval time.Duration) *Watcher {
	if interval == 0 {
		interval = time.Second
	}
	return &Watcher{
		source:   source,
		interval: interval,
		events:   make(chan Event, 16),
	}
}

// Events returns the channel of playback events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start samples the source until ctx is cancelled. The events channel is
// closed on return.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	prev := w.sample()
	w.emit(diffStates(nil, prev, time.Now()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			curr := w.sample()
			w.emit(diffStates(prev, curr, time.Now()))
			prev = curr
		}
	}
}

func (w *Watcher) sample() *core.PlaybackSnapshot {
	snap, ok := w.source.Bluetooth()
	if !ok {
		return nil
	}
	return &snap
}

func (w *Watcher) emit(events []Event) {
	for _, e := range events {
		select {
		case w.events <- e:
		default:
			// Drop event if channel is full
		}
	}
}

// diffStates compares two samples and returns detected events.
func diffStates(prev, curr *core.PlaybackSnapshot, now time.Time) []Event {
	event := func(t EventType) Event {
		return Event{Type: t, Timestamp: now, Previous: prev, Current: curr}
	}

	switch {
	case prev == nil && curr == nil:
		return nil
	case prev == nil:
		return []Event{event(EventConnect), event(EventTrackChange)}
	case curr == nil:
		return []Event{event(EventDisconnect)}
	}

	var events []Event

	if !prev.SameTrack(*curr) {
		eventType := EventTrackChange
		if wasCompleted(prev) {
			eventType = EventTrackComplete
		} else if wasSkipped(prev) {
			eventType = EventTrackSkip
		}
		events = append(events, event(eventType))
	}

	if prev.IsPlaying() && !curr.IsPlaying() {
		events = append(events, event(EventPause))
	} else if !prev.IsPlaying() && curr.IsPlaying() {
		events = append(events, event(EventResume))
	}

	if prev.Volume != curr.Volume {
		events = append(events, event(EventVolumeChange))
	}

	if prev.Shuffle != curr.Shuffle {
		events = append(events, event(EventShuffleChange))
	}

	return events
}

// completeThreshold is the share of a track that counts as listened through.
const completeThreshold = 0.95

// wasCompleted returns true if the track likely completed naturally.
func wasCompleted(s *core.PlaybackSnapshot) bool {
	if s.Duration == 0 {
		return false
	}
	return float64(s.Position) >= float64(s.Duration)*completeThreshold
}

// wasSkipped returns true if the track was likely skipped.
func wasSkipped(s *core.PlaybackSnapshot) bool {
	if s.Duration == 0 {
		return true // Assume skip if we can't determine
	}
	return float64(s.Position) < float64(s.Duration)*completeThreshold
}
