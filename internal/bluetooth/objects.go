package bluetooth

import (
	"errors"
	"maps"
	"slices"

	"github.com/godbus/dbus/v5"

	"github.com/tessro/unyo/internal/core"
)

// BlueZ interface names.
const (
	MediaPlayerInterface    = "org.bluez.MediaPlayer1"
	MediaTransportInterface = "org.bluez.MediaTransport1"
)

const unknown = "Unknown"

// ObjectTree is the reply of ObjectManager.GetManagedObjects:
// object path -> interface name -> property name -> value.
type ObjectTree = map[dbus.ObjectPath]map[string]Properties

// PlayerRecord is the raw, untruncated state of one MediaPlayer1 object.
type PlayerRecord struct {
	Path     dbus.ObjectPath
	Title    string
	Artist   string
	Duration uint32
	Position uint32
	Status   string
	Shuffle  bool
}

// sortedPaths returns the tree's object paths in lexical order so repeated
// scans over the same tree pick the same object.
func sortedPaths(tree ObjectTree) []dbus.ObjectPath {
	return slices.Sorted(maps.Keys(tree))
}

// FindPlayer returns the first object exposing MediaPlayer1 that decodes
// cleanly. Decode errors from skipped candidates are joined into err, which
// may be non-nil even when a player is found.
func FindPlayer(tree ObjectTree) (rec PlayerRecord, found bool, err error) {
	var errs []error
	for _, path := range sortedPaths(tree) {
		props, ok := tree[path][MediaPlayerInterface]
		if !ok {
			continue
		}
		r, derr := decodePlayer(path, props)
		if derr != nil {
			errs = append(errs, derr)
			continue
		}
		return r, true, errors.Join(errs...)
	}
	return PlayerRecord{}, false, errors.Join(errs...)
}

func decodePlayer(path dbus.ObjectPath, props Properties) (PlayerRecord, error) {
	rec := PlayerRecord{Path: path}

	track, err := decodeDict(props, "Track")
	if err != nil {
		return rec, withPath(err, path)
	}
	if rec.Title, err = decodeString(track, "Title", unknown); err != nil {
		return rec, withPath(err, path)
	}
	if rec.Artist, err = decodeString(track, "Artist", unknown); err != nil {
		return rec, withPath(err, path)
	}
	if rec.Duration, err = decodeUint32(track, "Duration", 0); err != nil {
		return rec, withPath(err, path)
	}
	if rec.Position, err = decodeUint32(props, "Position", 0); err != nil {
		return rec, withPath(err, path)
	}
	if rec.Status, err = decodeString(props, "Status", ""); err != nil {
		return rec, withPath(err, path)
	}
	rec.Shuffle = decodeShuffle(props)

	return rec, nil
}

func withPath(err error, path dbus.ObjectPath) error {
	var de *DecodeError
	if errors.As(err, &de) {
		de.Path = path
	}
	return err
}

// FindTransportVolume scans for a MediaTransport1 Volume property.
func FindTransportVolume(tree ObjectTree) (uint16, bool) {
	for _, path := range sortedPaths(tree) {
		props, ok := tree[path][MediaTransportInterface]
		if !ok {
			continue
		}
		vol, ok, err := decodeUint16(props, "Volume")
		if err != nil || !ok {
			continue
		}
		return vol, true
	}
	return 0, false
}

// Snapshot converts a record into a display-ready snapshot.
func (r PlayerRecord) Snapshot(volume uint16) core.PlaybackSnapshot {
	return core.PlaybackSnapshot{
		Title:    core.Truncate(r.Title, core.MaxTitleLen),
		Artist:   core.Truncate(r.Artist, core.MaxArtistLen),
		State:    core.ParsePlaybackState(r.Status),
		Position: r.Position,
		Duration: r.Duration,
		Shuffle:  r.Shuffle,
		Volume:   volume,
	}
}

// Decode extracts the playback snapshot from a managed object tree. found is
// false when no player decodes. err carries decode errors for logging only.
func Decode(tree ObjectTree) (snap core.PlaybackSnapshot, found bool, err error) {
	rec, found, err := FindPlayer(tree)
	if !found {
		return core.PlaybackSnapshot{}, false, err
	}
	volume, _ := FindTransportVolume(tree)
	return rec.Snapshot(volume), true, err
}
