package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	appName = "presenced"

	defaultInterval = 10 * time.Second
	// MinInterval is the floor applied to the poll interval
	MinInterval = 5 * time.Second

	// DefaultClientID is the Discord application shown as "Listening to ..."
	DefaultClientID = "1129859263741837373"
)

// LastfmAPIKey is baked in at build time:
//
//	go build -ldflags "-X github.com/genricoloni/presenced/internal/config.LastfmAPIKey=..."
var LastfmAPIKey = ""

// Settings mirrors the config file. Zero values mean "use the default".
type Settings struct {
	Interval      int      `koanf:"interval"` // seconds
	Allowlist     []string `koanf:"allowlist"`
	DisableCache  bool     `koanf:"disable_cache"`
	YouTubeButton bool     `koanf:"youtube_button"`
	ProfileButton string   `koanf:"profile_button"` // last.fm nickname
	Debug         bool     `koanf:"debug"`
	LastfmAPIKey  string   `koanf:"lastfm_api_key"`
	ClientID      string   `koanf:"client_id"`
	CacheDir      string   `koanf:"cache_dir"`
}

// DefaultPath returns $XDG_CONFIG_HOME/presenced/config.toml
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// LoadFile reads settings from a TOML file. A missing file yields empty settings.
func LoadFile(path string) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to stat config file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return s, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := k.Unmarshal("", &s); err != nil {
		return s, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return s, nil
}

// AppConfig holds the resolved application configuration
type AppConfig struct {
	interval      time.Duration
	allowlist     []string
	cacheEnabled  bool
	cacheDir      string
	youtubeButton bool
	profileNick   string
	lastfmAPIKey  string
	clientID      string
	debug         bool
}

// NewAppConfig resolves settings into a configuration: defaults are applied,
// the interval is clamped and environment overrides are read.
func NewAppConfig(s Settings) *AppConfig {
	interval := defaultInterval
	if s.Interval > 0 {
		interval = time.Duration(s.Interval) * time.Second
	}
	if interval < MinInterval {
		interval = MinInterval
	}

	// Read from environment variables or use defaults
	apiKey := os.Getenv("PRESENCED_LASTFM_API_KEY")
	if apiKey == "" {
		apiKey = s.LastfmAPIKey
	}
	if apiKey == "" {
		apiKey = LastfmAPIKey
	}

	cacheDir := os.Getenv("PRESENCED_CACHE_DIR")
	if cacheDir == "" {
		cacheDir = s.CacheDir
	}
	if cacheDir == "" && xdg.CacheHome != "" {
		cacheDir = filepath.Join(xdg.CacheHome, appName)
	}
	cacheDir = expandPath(os.ExpandEnv(cacheDir))

	clientID := s.ClientID
	if clientID == "" {
		clientID = DefaultClientID
	}

	allowlist := make([]string, 0, len(s.Allowlist))
	for _, name := range s.Allowlist {
		if name != "" {
			allowlist = append(allowlist, name)
		}
	}

	return &AppConfig{
		interval:      interval,
		allowlist:     allowlist,
		cacheEnabled:  !s.DisableCache && cacheDir != "",
		cacheDir:      cacheDir,
		youtubeButton: s.YouTubeButton,
		profileNick:   s.ProfileButton,
		lastfmAPIKey:  apiKey,
		clientID:      clientID,
		debug:         s.Debug,
	}
}

// Log writes the effective configuration at debug level
func (c *AppConfig) Log(logger *zap.Logger) {
	logger.Debug("Configuration loaded",
		zap.Duration("interval", c.interval),
		zap.Strings("allowlist", c.allowlist),
		zap.Bool("cache", c.cacheEnabled),
		zap.String("cacheDir", c.cacheDir),
		zap.Bool("youtubeButton", c.youtubeButton),
		zap.String("profile", c.profileNick),
		zap.Bool("lastfmKey", c.lastfmAPIKey != ""))
}

// GetInterval returns the poll interval
func (c *AppConfig) GetInterval() time.Duration {
	return c.interval
}

// GetAllowlist returns the ordered player allow-list
func (c *AppConfig) GetAllowlist() []string {
	return c.allowlist
}

// IsCacheEnabled reports whether the artwork cache is used
func (c *AppConfig) IsCacheEnabled() bool {
	return c.cacheEnabled
}

// GetCacheDir returns the artwork cache directory
func (c *AppConfig) GetCacheDir() string {
	return c.cacheDir
}

// ShowYouTubeButton reports whether the YouTube search button is published
func (c *AppConfig) ShowYouTubeButton() bool {
	return c.youtubeButton
}

// GetProfileNickname returns the last.fm nickname used by the profile button
func (c *AppConfig) GetProfileNickname() string {
	return c.profileNick
}

// GetLastfmAPIKey returns the last.fm API key
func (c *AppConfig) GetLastfmAPIKey() string {
	return c.lastfmAPIKey
}

// GetClientID returns the Discord application identifier
func (c *AppConfig) GetClientID() string {
	return c.clientID
}

// IsDebug reports whether debug logging is enabled
func (c *AppConfig) IsDebug() bool {
	return c.debug
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
