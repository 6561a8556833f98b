package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/genricoloni/presenced/internal/config"
	"github.com/genricoloni/presenced/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func testConfig(t *testing.T, s config.Settings) *config.AppConfig {
	t.Helper()
	t.Setenv("PRESENCED_CACHE_DIR", t.TempDir())
	t.Setenv("PRESENCED_LASTFM_API_KEY", "")
	return config.NewAppConfig(s)
}

// TestAppGraphValidity verifies that the dependency graph is resolvable.
// This test will fail if you forget an fx.Provide for a required interface.
func TestAppGraphValidity(t *testing.T) {
	for _, debug := range []bool{false, true} {
		cfg := testConfig(t, config.Settings{Debug: debug})
		if err := fx.ValidateApp(AppOptions(cfg)); err != nil {
			t.Errorf("Dependency graph is not valid (debug=%v): %v", debug, err)
		}
	}
}

// TestNewLogger specifically verifies the logger configuration
func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		level zapcore.Level
	}{
		{name: "Default Is Info", debug: false, level: zapcore.InfoLevel},
		{name: "Debug Flag", debug: true, level: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := newLogger(testConfig(t, config.Settings{Debug: tt.debug}))
			if err != nil {
				t.Fatalf("Failed to create logger: %v", err)
			}
			if logger == nil {
				t.Fatal("Logger should not be nil")
			}
			if !logger.Core().Enabled(tt.level) {
				t.Errorf("level %v should be enabled", tt.level)
			}
			if tt.level == zapcore.InfoLevel && logger.Core().Enabled(zapcore.DebugLevel) {
				t.Error("debug level should be disabled by default")
			}
		})
	}
}

func TestNewCoverCache(t *testing.T) {
	t.Run("Disabled Yields Nil Interface", func(t *testing.T) {
		var got domain.CoverCache
		app := fx.New(
			fx.NopLogger,
			fx.Provide(
				func() domain.Config { return testConfig(t, config.Settings{DisableCache: true}) },
				zap.NewNop,
				newCoverCache,
			),
			fx.Populate(&got),
		)
		require.NoError(t, app.Err())
		assert.Nil(t, got)
	})

	t.Run("Enabled Opens Store", func(t *testing.T) {
		var got domain.CoverCache
		app := fx.New(
			fx.NopLogger,
			fx.Provide(
				func() domain.Config { return testConfig(t, config.Settings{}) },
				zap.NewNop,
				newCoverCache,
			),
			fx.Populate(&got),
		)
		require.NoError(t, app.Err())
		require.NotNil(t, got)

		require.NoError(t, got.Put("A - Alb", "http://img/x.jpg"))
		require.NoError(t, app.Start(context.Background()))
		require.NoError(t, app.Stop(context.Background()))
	})
}

// TestEndToEndStartup tries a real startup/stop in a controlled environment
func TestEndToEndStartup(t *testing.T) {
	// no session bus: the loop keeps retrying until stopped
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path="+filepath.Join(t.TempDir(), "no-bus"))
	cfg := testConfig(t, config.Settings{DisableCache: true})
	app := fx.New(AppOptions(cfg))

	if err := app.Start(context.Background()); err != nil {
		t.Fatalf("App failed to start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		t.Fatalf("App failed to stop: %v", err)
	}
}

func TestResolveFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
interval = 30
allowlist = ["Spotify"]
youtube_button = true
`), 0o644))
	t.Setenv("PRESENCED_CACHE_DIR", dir)

	tests := []struct {
		name      string
		args      []string
		interval  time.Duration
		allowlist []string
		youtube   bool
		cache     bool
	}{
		{
			name:      "File Values",
			args:      []string{"--config", path},
			interval:  30 * time.Second,
			allowlist: []string{"Spotify"},
			youtube:   true,
			cache:     true,
		},
		{
			name:      "Flags Override File",
			args:      []string{"--config", path, "-i", "2", "-a", "VLC media player", "-a", "mpv", "--disable-cache", "--yt-button=false"},
			interval:  config.MinInterval,
			allowlist: []string{"VLC media player", "mpv"},
			youtube:   false,
			cache:     false,
		},
		{
			name:      "Missing File Uses Defaults",
			args:      []string{"--config", filepath.Join(dir, "nope.toml")},
			interval:  10 * time.Second,
			allowlist: []string{},
			cache:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			require.NoError(t, cmd.ParseFlags(tt.args))

			opts := &rootOptions{}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.interval, _ = cmd.Flags().GetInt("interval")
			opts.allowlist, _ = cmd.Flags().GetStringArray("allowlist")
			opts.disableCache, _ = cmd.Flags().GetBool("disable-cache")
			opts.youtubeButton, _ = cmd.Flags().GetBool("yt-button")

			cfg, err := opts.resolve(cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.interval, cfg.GetInterval())
			assert.Equal(t, tt.allowlist, cfg.GetAllowlist())
			assert.Equal(t, tt.youtube, cfg.ShowYouTubeButton())
			assert.Equal(t, tt.cache, cfg.IsCacheEnabled())
		})
	}
}
