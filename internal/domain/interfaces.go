package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/genricoloni/presenced/internal/domain PlayerSource,PresenceClient,CoverCache,CoverLookup

// PlayerSource exposes the media players on the session bus.
// Implementations should handle D-Bus/MPRIS communication
type PlayerSource interface {
	// Connect acquires the bus handle, reusing a live one when possible
	Connect() error

	// ListPlayers enumerates every player currently on the bus
	ListPlayers() ([]PlayerRef, error)

	// FindActivePlayer resolves the player to mirror.
	// A non-empty allowlist is tried in order and the first live match wins;
	// an empty allowlist picks whichever player the bus reports as active.
	FindActivePlayer(allowlist []string) (PlayerRef, error)

	// ReadSnapshot reads metadata, status and position of a player
	ReadSnapshot(ref PlayerRef) (PlaybackSnapshot, error)

	// Close releases the bus handle
	Close() error
}

// PresenceClient is the transport to the presence peer
type PresenceClient interface {
	// Connect performs the first handshake with the peer
	Connect() error

	// Reconnect drops any existing channel and handshakes again
	Reconnect() error

	// SetActivity publishes an activity
	SetActivity(activity Activity) error

	// ClearActivity removes the published activity
	ClearActivity() error

	// Close terminates the channel
	Close() error
}

// CoverCache is a durable AlbumKey -> image reference mapping
type CoverCache interface {
	// Get returns the cached reference for key, if any
	Get(key AlbumKey) (string, bool)

	// Put stores a reference and flushes it to disk before returning
	Put(key AlbumKey, url string) error
}

// CoverLookup queries the remote artwork service
type CoverLookup interface {
	// Lookup returns the largest image URL known for an album
	Lookup(ctx context.Context, artist, album string) (string, error)
}

// ServiceManager controls the background unit running the daemon
type ServiceManager interface {
	// Enable installs, enables and starts the unit
	Enable(ctx context.Context) error

	// Disable stops and disables the unit
	Disable(ctx context.Context) error

	// Restart restarts the unit
	Restart(ctx context.Context) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetInterval returns the poll interval, already floor-clamped
	GetInterval() time.Duration

	// GetAllowlist returns the ordered player allow-list
	GetAllowlist() []string

	// IsCacheEnabled reports whether the artwork cache is in use
	IsCacheEnabled() bool

	// GetCacheDir returns the directory holding the artwork cache
	GetCacheDir() string

	// ShowYouTubeButton reports whether the YouTube search button is published
	ShowYouTubeButton() bool

	// GetProfileNickname returns the last.fm nickname for the profile button, or ""
	GetProfileNickname() string

	// GetLastfmAPIKey returns the last.fm API key, or ""
	GetLastfmAPIKey() string

	// GetClientID returns the Discord application identifier
	GetClientID() string

	// IsDebug reports whether debug logging is enabled
	IsDebug() bool
}
