package main

import (
	"context"
	"fmt"

	"github.com/genricoloni/presenced/internal/config"
	"github.com/genricoloni/presenced/internal/domain"
	"github.com/genricoloni/presenced/internal/engine"
	"github.com/genricoloni/presenced/internal/monitor"
	"github.com/genricoloni/presenced/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the command line flags
type rootOptions struct {
	configPath    string
	interval      int
	allowlist     []string
	disableCache  bool
	youtubeButton bool
	profileButton string
	debug         bool
	listPlayers   bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "presenced",
		Short: "Discord rich presence for MPRIS music players",
		Long: `presenced mirrors what your MPRIS music player is playing into your
Discord status, with album covers from last.fm and a progress bar.

Settings are read from $XDG_CONFIG_HOME/presenced/config.toml; flags override them.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			if opts.listPlayers {
				return runListPlayers(cmd, cfg)
			}
			return runDaemon(cmd.Context(), cfg)
		},
	}

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&opts.configPath, "config", config.DefaultPath(), "path to the config file")
	pflags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	flags := cmd.Flags()
	flags.IntVarP(&opts.interval, "interval", "i", 10, fmt.Sprintf("poll interval in seconds (minimum %d)", int(config.MinInterval.Seconds())))
	flags.StringArrayVarP(&opts.allowlist, "allowlist", "a", nil, "only use this player; repeat to add more, earlier entries win")
	flags.BoolVar(&opts.disableCache, "disable-cache", false, "do not cache album cover links")
	flags.BoolVar(&opts.youtubeButton, "yt-button", false, "show a \"Search this song on YouTube\" button")
	flags.StringVar(&opts.profileButton, "profile-button", "", "show a button linking to this last.fm profile")
	flags.BoolVarP(&opts.listPlayers, "list-players", "l", false, "list players with MPRIS support and exit")

	cmd.AddCommand(newListPlayersCommand(opts))
	cmd.AddCommand(newServiceCommand(opts, "enable", "Install, enable and start the systemd user service",
		func(ctx context.Context, m domain.ServiceManager) error { return m.Enable(ctx) }))
	cmd.AddCommand(newServiceCommand(opts, "disable", "Stop and disable the systemd user service",
		func(ctx context.Context, m domain.ServiceManager) error { return m.Disable(ctx) }))
	cmd.AddCommand(newServiceCommand(opts, "restart", "Restart the systemd user service",
		func(ctx context.Context, m domain.ServiceManager) error { return m.Restart(ctx) }))

	return cmd
}

// resolve merges the config file with the flags that were set explicitly
func (o *rootOptions) resolve(cmd *cobra.Command) (*config.AppConfig, error) {
	s, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("interval") {
		s.Interval = o.interval
	}
	if f.Changed("allowlist") {
		s.Allowlist = o.allowlist
	}
	if f.Changed("disable-cache") {
		s.DisableCache = o.disableCache
	}
	if f.Changed("yt-button") {
		s.YouTubeButton = o.youtubeButton
	}
	if f.Changed("profile-button") {
		s.ProfileButton = o.profileButton
	}
	if f.Changed("debug") {
		s.Debug = o.debug
	}

	return config.NewAppConfig(s), nil
}

func newListPlayersCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "list-players",
		Short:        "List players with MPRIS support",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runListPlayers(cmd, cfg)
		},
	}
}

func runListPlayers(cmd *cobra.Command, cfg *config.AppConfig) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return engine.ListPlayers(cmd.OutOrStdout(), monitor.NewMprisSource(logger))
}

func newServiceCommand(
	opts *rootOptions,
	use, short string,
	action func(ctx context.Context, m domain.ServiceManager) error,
) *cobra.Command {
	return &cobra.Command{
		Use:          use,
		Short:        short,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err := action(cmd.Context(), service.NewManager(logger)); err != nil {
				logger.Error("Service command failed", zap.String("command", use), zap.Error(err))
				return err
			}
			return nil
		},
	}
}
