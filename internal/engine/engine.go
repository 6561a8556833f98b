package engine

import (
	"context"
	"time"

	"github.com/genricoloni/presenced/internal/artwork"
	"github.com/genricoloni/presenced/internal/domain"
	"github.com/genricoloni/presenced/internal/notice"
	"github.com/genricoloni/presenced/internal/presence"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// State is owned by the reconciliation loop and only updated once the
// outcome of a publish is known.
type State struct {
	Previous      domain.PlaybackSnapshot
	PreviousAlbum domain.AlbumKey
	LastCoverURL  string
	// Interrupted forces the next usable snapshot to be published
	Interrupted bool
}

// Engine mirrors the active player into the presence peer.
// It polls the player source on a fixed interval; all I/O happens on the loop goroutine.
type Engine struct {
	logger   *zap.Logger
	cfg      domain.Config
	source   domain.PlayerSource
	resolver *artwork.Resolver
	presence *presence.Manager
	notices  *notice.Tracker
	state    State

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewEngine creates a new reconciliation engine
func NewEngine(
	logger *zap.Logger,
	cfg domain.Config,
	source domain.PlayerSource,
	resolver *artwork.Resolver,
	mgr *presence.Manager,
) *Engine {
	return &Engine{
		logger:   logger,
		cfg:      cfg,
		source:   source,
		resolver: resolver,
		presence: mgr,
		notices:  notice.NewTracker(),
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// State returns a copy of the loop state
func (e *Engine) State() State {
	return e.state
}

// Start launches the loop in a goroutine and returns immediately.
// The loop outlives ctx, which only bounds startup; Stop ends it.
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...", zap.Duration("interval", e.cfg.GetInterval()))

	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})

	go func() {
		defer close(e.done)
		e.Run(runCtx)
	}()
	return nil
}

// Stop ends the loop, clears the published activity and releases the
// presence and bus connections.
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	if e.cancel != nil {
		e.cancel()
		select {
		case <-e.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return multierr.Combine(
		e.presence.Shutdown(),
		e.source.Close(),
	)
}

// Run polls until ctx is cancelled
func (e *Engine) Run(ctx context.Context) {
	for ctx.Err() == nil {
		e.pass(ctx)
		if !e.sleep(ctx, e.cfg.GetInterval()) {
			break
		}
	}
	e.logger.Info("Engine loop stopped")
}

// pass is one iteration of the outer loop: bus, player, peer, then the
// inner loop for as long as the player keeps answering.
func (e *Engine) pass(ctx context.Context) {
	if !e.connectBus() {
		return
	}

	ref, ok := e.findPlayer()
	if !ok {
		return
	}

	if res, _ := e.presence.Ensure(); res != presence.ResultOK {
		return
	}
	// a new peer session starts without our activity
	e.state.Interrupted = true

	for e.Step(ctx, ref) {
		if !e.sleep(ctx, e.cfg.GetInterval()) {
			return
		}
	}
}

func (e *Engine) connectBus() bool {
	if err := e.source.Connect(); err != nil {
		if e.notices.Fail(notice.ClassBus) {
			e.logger.Warn("Could not connect to the session bus. Retrying...", zap.Error(err))
		}
		return false
	}
	if e.notices.Recover(notice.ClassBus) {
		e.logger.Info("Connected to the session bus")
	}
	return true
}

func (e *Engine) findPlayer() (domain.PlayerRef, bool) {
	allowlist := e.cfg.GetAllowlist()

	ref, err := e.source.FindActivePlayer(allowlist)
	if err != nil {
		if e.notices.Fail(notice.ClassPlayer) {
			if len(allowlist) > 0 {
				e.logger.Warn("Could not find any active player from your allowlist with MPRIS support. Waiting for any player from your allowlist...",
					zap.Strings("allowlist", allowlist))
			} else {
				e.logger.Warn("Could not find any player with MPRIS support. Waiting for any player...")
			}
			e.presence.ResetNotices()
		}
		e.logger.Debug("Player lookup failed", zap.Error(err))

		e.state.Interrupted = true
		e.presence.Clear()
		return ref, false
	}

	if e.notices.Observe(notice.ClassPlayer, notice.OK) {
		e.logger.Info("Found active player with MPRIS support",
			zap.String("player", ref.Identity),
			zap.String("bus", ref.BusName))
	}
	return ref, true
}

// Step reconciles a single snapshot of ref. It returns false when the
// outer loop has to take over (read failure, lost peer).
func (e *Engine) Step(ctx context.Context, ref domain.PlayerRef) bool {
	snap, err := e.source.ReadSnapshot(ref)
	if err != nil {
		e.logger.Warn("Could not read player state",
			zap.String("player", ref.Identity),
			zap.Error(err))
		e.presence.Clear()
		return false
	}

	if !snap.Usable() {
		if e.notices.Fail(notice.ClassMetadata) {
			e.logger.Debug("Unknown metadata, skipping...", zap.String("player", ref.Identity))
		}
		return true
	}
	e.notices.Recover(notice.ClassMetadata)

	if !e.changed(snap) && !e.state.Interrupted {
		e.logger.Debug("The same metadata and status, skipping...")
		return true
	}

	key := snap.Identity.AlbumKey()
	cover := e.resolver.Resolve(ctx, artwork.Request{
		Current:      key,
		Previous:     e.state.PreviousAlbum,
		Album:        snap.Identity.Album,
		Artist:       snap.Identity.Artist,
		CacheEnabled: e.cfg.IsCacheEnabled(),
		PreviousURL:  e.state.LastCoverURL,
	})

	activity := BuildActivity(snap, cover, Timestamps(snap, e.now()), ButtonOptions{
		YouTube:         e.cfg.ShowYouTubeButton(),
		ProfileNickname: e.cfg.GetProfileNickname(),
	})

	res, err := e.presence.Publish(activity)
	switch res {
	case presence.ResultOK:
		e.record(snap, key, cover)
		e.logger.Info("Set activity",
			zap.String("status", activity.Assets.SmallText),
			zap.String("song", snap.Identity.Artist+" - "+snap.Identity.Title))
		return true
	case presence.ResultFatal:
		// the connection is fine but this payload is not; do not resend it every poll
		e.record(snap, key, cover)
		return true
	default:
		e.logger.Warn("Could not set activity", zap.Error(err))
		e.state.Interrupted = true
		return false
	}
}

// changed reports whether snap differs from the last published snapshot.
// A position that went backwards counts as a change (track repeated).
func (e *Engine) changed(snap domain.PlaybackSnapshot) bool {
	prev := e.state.Previous
	if snap.Identity != prev.Identity || snap.IsPlaying() != prev.IsPlaying() {
		return true
	}
	return snap.HasPosition && prev.HasPosition && snap.Position < prev.Position
}

func (e *Engine) record(snap domain.PlaybackSnapshot, key domain.AlbumKey, cover string) {
	e.state.Previous = snap
	e.state.PreviousAlbum = key
	e.state.LastCoverURL = cover
	e.state.Interrupted = false
}

// sleepContext waits for d and reports false if ctx ended first
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
