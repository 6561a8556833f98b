package domain

import "time"

// Placeholders used when a player omits a metadata field
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// MissingCover is the asset key published when no artwork could be resolved
const MissingCover = "missing-cover"

// PlayerStatus represents the current state of the media player
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlayerStatus = "Stopped"
)

// ParsePlayerStatus maps an MPRIS PlaybackStatus value to a PlayerStatus.
// Unrecognised values are treated as stopped.
func ParsePlayerStatus(s string) PlayerStatus {
	switch PlayerStatus(s) {
	case StatusPlaying:
		return StatusPlaying
	case StatusPaused:
		return StatusPaused
	default:
		return StatusStopped
	}
}

// AlbumKey identifies an album by artist and album name.
// It is the artwork cache key and the "album changed" comparator.
type AlbumKey string

// NewAlbumKey builds the key for an artist/album pair
func NewAlbumKey(artist, album string) AlbumKey {
	return AlbumKey(artist + " - " + album)
}

// TrackIdentity is the part of the player metadata used for change detection
type TrackIdentity struct {
	Artist string
	Title  string
	Album  string
}

// AlbumKey returns the album identity of the track
func (t TrackIdentity) AlbumKey() AlbumKey {
	return NewAlbumKey(t.Artist, t.Album)
}

// IsUnknown reports whether every field is still its placeholder
func (t TrackIdentity) IsUnknown() bool {
	return t.Artist == UnknownArtist && t.Title == UnknownTitle && t.Album == UnknownAlbum
}

// PlaybackSnapshot is a point-in-time read of a player.
// Position and Duration are truncated to whole seconds.
type PlaybackSnapshot struct {
	Identity TrackIdentity
	Status   PlayerStatus
	// Position is only meaningful when HasPosition is set
	Position    time.Duration
	HasPosition bool
	// Duration is zero when the player does not report a track length
	Duration time.Duration
}

// IsPlaying reports whether the player is actively playing
func (s PlaybackSnapshot) IsPlaying() bool {
	return s.Status == StatusPlaying
}

// Usable reports whether the snapshot describes something worth publishing
func (s PlaybackSnapshot) Usable() bool {
	if s.Identity.IsUnknown() {
		return false
	}
	return s.Identity.Artist != "" && s.Identity.Title != ""
}

// PlayerRef points at a live MPRIS player on the bus
type PlayerRef struct {
	// BusName is the well-known name, e.g. "org.mpris.MediaPlayer2.spotify"
	BusName string
	// Identity is the human readable name reported by the player
	Identity string
}

// ActivityType mirrors the Discord activity type enum
type ActivityType int

const (
	ActivityPlaying   ActivityType = 0
	ActivityListening ActivityType = 2
	ActivityWatching  ActivityType = 3
)

// Assets holds the image keys and hover texts of an activity
type Assets struct {
	LargeImage string
	LargeText  string
	SmallImage string
	SmallText  string
}

// Timestamps are unix seconds; zero means "not set"
type Timestamps struct {
	Start int64
	End   int64
}

// Button is an external link shown under the activity
type Button struct {
	Label string
	URL   string
}

// Activity is the payload published to the presence peer
type Activity struct {
	State      string
	Details    string
	Assets     Assets
	Type       ActivityType
	Timestamps *Timestamps
	Buttons    []Button
}
