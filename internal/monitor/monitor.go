package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/genricoloni/presenced/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	mprisPrefix = "org.mpris.MediaPlayer2."
	mprisPath   = "/org/mpris/MediaPlayer2"

	propIdentity = "org.mpris.MediaPlayer2.Identity"
	propMetadata = "org.mpris.MediaPlayer2.Player.Metadata"
	propStatus   = "org.mpris.MediaPlayer2.Player.PlaybackStatus"
	propPosition = "org.mpris.MediaPlayer2.Player.Position"
)

// MprisSource reads media players over the D-Bus MPRIS interface.
// It polls on demand; all calls happen on the caller's goroutine.
type MprisSource struct {
	logger *zap.Logger
	dial   Dialer
	conn   DBusClient // Interface for testability
}

// NewMprisSource creates a new MPRIS source dialing the session bus
func NewMprisSource(logger *zap.Logger) *MprisSource {
	return &MprisSource{
		logger: logger,
		dial:   NewStdDBusClient,
	}
}

// Connect acquires the bus handle, keeping the current one while it is alive
func (m *MprisSource) Connect() error {
	if m.conn != nil && m.conn.Connected() {
		return nil
	}
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			m.logger.Debug("Failed to close stale D-Bus connection", zap.Error(err))
		}
		m.conn = nil
	}

	conn, err := m.dial()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBusUnavailable, err)
	}
	m.conn = conn
	m.logger.Debug("Connected to session bus")
	return nil
}

// Close closes the D-Bus connection
func (m *MprisSource) Close() error {
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	return err
}

// ListPlayers queries D-Bus for currently running MPRIS players
func (m *MprisSource) ListPlayers() ([]domain.PlayerRef, error) {
	if m.conn == nil {
		return nil, domain.ErrBusUnavailable
	}

	names, err := m.conn.ListNames()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list bus names: %w", domain.ErrBusUnavailable, err)
	}

	// Filter for MPRIS player names (org.mpris.MediaPlayer2.*)
	var players []domain.PlayerRef
	for _, name := range names {
		if !strings.HasPrefix(name, mprisPrefix) {
			continue
		}
		players = append(players, domain.PlayerRef{
			BusName:  name,
			Identity: m.identity(name),
		})
	}
	return players, nil
}

// FindActivePlayer picks the player to mirror.
// Allow-list entries are priorities: the first entry with a live player wins.
// Without an allow-list the first playing player wins, then the first paused one,
// then whichever player the bus lists first.
func (m *MprisSource) FindActivePlayer(allowlist []string) (domain.PlayerRef, error) {
	players, err := m.ListPlayers()
	if err != nil {
		return domain.PlayerRef{}, err
	}
	if len(players) == 0 {
		return domain.PlayerRef{}, domain.ErrNoPlayer
	}

	if len(allowlist) > 0 {
		for _, want := range allowlist {
			for _, p := range players {
				if matchesName(p, want) {
					return p, nil
				}
			}
		}
		return domain.PlayerRef{}, fmt.Errorf("%w: none of %v is running", domain.ErrNoPlayer, allowlist)
	}

	paused := -1
	for i, p := range players {
		status, err := m.status(p.BusName)
		if err != nil {
			m.logger.Debug("Skipping player without playback status",
				zap.String("player", p.BusName), zap.Error(err))
			continue
		}
		switch status {
		case domain.StatusPlaying:
			return p, nil
		case domain.StatusPaused:
			if paused < 0 {
				paused = i
			}
		}
	}
	if paused >= 0 {
		return players[paused], nil
	}
	return players[0], nil
}

// ReadSnapshot retrieves metadata, status and position from a specific player
func (m *MprisSource) ReadSnapshot(ref domain.PlayerRef) (domain.PlaybackSnapshot, error) {
	if m.conn == nil {
		return domain.PlaybackSnapshot{}, fmt.Errorf("%w: bus not connected", domain.ErrPlayerRead)
	}

	variant, err := m.conn.GetProperty(ref.BusName, mprisPath, propMetadata)
	if err != nil {
		return domain.PlaybackSnapshot{}, fmt.Errorf("%w: failed to get metadata: %w", domain.ErrPlayerRead, err)
	}
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		return domain.PlaybackSnapshot{}, fmt.Errorf("%w: metadata is %T, not a map", domain.ErrPlayerRead, variant.Value())
	}

	status, err := m.status(ref.BusName)
	if err != nil {
		return domain.PlaybackSnapshot{}, err
	}

	snap := m.parseMetadata(metadata)
	snap.Status = status

	// Position is optional: many browsers and some players do not implement it
	if posVariant, err := m.conn.GetProperty(ref.BusName, mprisPath, propPosition); err == nil {
		if micros, ok := toInt64(posVariant.Value()); ok && micros >= 0 {
			snap.Position = microsToSeconds(micros)
			snap.HasPosition = true
		}
	} else {
		m.logger.Debug("Player does not report position", zap.String("player", ref.BusName), zap.Error(err))
	}

	return snap, nil
}

func (m *MprisSource) status(busName string) (domain.PlayerStatus, error) {
	variant, err := m.conn.GetProperty(busName, mprisPath, propStatus)
	if err != nil {
		return "", fmt.Errorf("%w: failed to get playback status: %w", domain.ErrPlayerRead, err)
	}
	s, ok := variant.Value().(string)
	if !ok {
		return "", fmt.Errorf("%w: invalid playback status format", domain.ErrPlayerRead)
	}
	return domain.ParsePlayerStatus(s), nil
}

func (m *MprisSource) identity(busName string) string {
	if variant, err := m.conn.GetProperty(busName, mprisPath, propIdentity); err == nil {
		if id, ok := variant.Value().(string); ok && id != "" {
			return id
		}
	}
	return strings.TrimPrefix(busName, mprisPrefix)
}

// parseMetadata converts MPRIS metadata to a snapshot, filling placeholders for missing fields
func (m *MprisSource) parseMetadata(metadata map[string]dbus.Variant) domain.PlaybackSnapshot {
	snap := domain.PlaybackSnapshot{
		Identity: domain.TrackIdentity{
			Artist: domain.UnknownArtist,
			Title:  domain.UnknownTitle,
			Album:  domain.UnknownAlbum,
		},
	}

	// Extract title
	if titleVar, ok := metadata["xesam:title"]; ok {
		if title, ok := titleVar.Value().(string); ok {
			snap.Identity.Title = title
		}
	}

	// Extract artist (can be an array)
	if artistVar, ok := metadata["xesam:artist"]; ok {
		switch artists := artistVar.Value().(type) {
		case []string:
			if len(artists) > 0 {
				snap.Identity.Artist = artists[0]
			}
		case string:
			snap.Identity.Artist = artists
		default:
			// Some non-compliant players may use unexpected types
			m.logger.Debug("Unexpected artist type in metadata",
				zap.String("type", fmt.Sprintf("%T", artistVar.Value())))
		}
	}

	// Extract album; an empty album counts as unknown
	if albumVar, ok := metadata["xesam:album"]; ok {
		if album, ok := albumVar.Value().(string); ok && album != "" {
			snap.Identity.Album = album
		}
	}

	// Track length in microseconds
	if lengthVar, ok := metadata["mpris:length"]; ok {
		if micros, ok := toInt64(lengthVar.Value()); ok && micros > 0 {
			snap.Duration = microsToSeconds(micros)
		}
	}

	return snap
}

func matchesName(p domain.PlayerRef, want string) bool {
	return strings.EqualFold(p.Identity, want) ||
		strings.EqualFold(strings.TrimPrefix(p.BusName, mprisPrefix), want)
}

// toInt64 accepts the integer encodings players use for Position and mpris:length
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func microsToSeconds(micros int64) time.Duration {
	return (time.Duration(micros) * time.Microsecond).Truncate(time.Second)
}
