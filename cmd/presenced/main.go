package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/presenced/internal/artwork"
	"github.com/genricoloni/presenced/internal/cache"
	"github.com/genricoloni/presenced/internal/config"
	"github.com/genricoloni/presenced/internal/domain"
	"github.com/genricoloni/presenced/internal/engine"
	"github.com/genricoloni/presenced/internal/monitor"
	"github.com/genricoloni/presenced/internal/presence"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// AppOptions wires the daemon for the given configuration
func AppOptions(cfg *config.AppConfig) fx.Option {
	return fx.Options(
		fxLogger(cfg),

		fx.Provide(
			func() domain.Config { return cfg },
			newLogger,
			fx.Annotate(monitor.NewMprisSource, fx.As(new(domain.PlayerSource))),
			newCoverCache,
			fx.Annotate(artwork.NewLastfmLookup, fx.As(new(domain.CoverLookup))),
			artwork.NewResolver,
			fx.Annotate(presence.NewDiscordClient, fx.As(new(domain.PresenceClient))),
			presence.NewManager,
			engine.NewEngine,
		),

		fx.Invoke(cfg.Log),
		fx.Invoke(registerHooks),
	)
}

// runDaemon starts the fx app and blocks until SIGINT/SIGTERM
func runDaemon(ctx context.Context, cfg *config.AppConfig) error {
	app := fx.New(AppOptions(cfg))
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startCtx, cancelStart := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	return app.Stop(stopCtx)
}

// newLogger creates the zap logger, at debug level when requested
func newLogger(cfg domain.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.IsDebug() {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zcfg.Build()
}

// fxLogger routes fx events through zap in debug mode and drops them otherwise
func fxLogger(cfg domain.Config) fx.Option {
	if !cfg.IsDebug() {
		return fx.NopLogger
	}
	return fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	})
}

// newCoverCache opens the artwork cache. It returns a nil cache when caching is disabled.
func newCoverCache(lc fx.Lifecycle, logger *zap.Logger, cfg domain.Config) domain.CoverCache {
	if !cfg.IsCacheEnabled() {
		logger.Info("Artwork cache disabled")
		return nil
	}

	store := cache.Open(logger, cfg.GetCacheDir())
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store
}

// registerHooks sets up application lifecycle hooks
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, e *engine.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("presenced started")
			return e.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			return e.Stop(ctx)
		},
	})
}
