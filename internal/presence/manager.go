package presence

import (
	"errors"

	"github.com/genricoloni/presenced/internal/domain"
	"github.com/genricoloni/presenced/internal/notice"
	"go.uber.org/zap"
)

// State of the peer connection as seen by the manager
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StatePublishing
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StatePublishing:
		return "publishing"
	default:
		return "disconnected"
	}
}

// Result tells the reconciler how to proceed after a manager operation
type Result int

const (
	// ResultOK means the operation took effect
	ResultOK Result = iota
	// ResultReconnect means the connection is gone and the outer loop must re-establish it
	ResultReconnect
	// ResultFatal means the peer refused the request but the connection is still usable
	ResultFatal
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultReconnect:
		return "reconnect"
	case ResultFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Manager owns the presence client and the "activity is published" flag.
// Not safe for concurrent use.
type Manager struct {
	logger    *zap.Logger
	client    domain.PresenceClient
	notices   notice.Tracker
	state     State
	connected bool // at least one successful connect
	published bool
}

func NewManager(logger *zap.Logger, client domain.PresenceClient) *Manager {
	return &Manager{
		logger: logger,
		client: client,
		state:  StateDisconnected,
	}
}

// State returns the current connection state
func (m *Manager) State() State {
	return m.state
}

// Published reports whether an activity is currently shown
func (m *Manager) Published() bool {
	return m.published
}

// Ensure establishes the connection. Until the first success it connects,
// afterwards it reconnects. Failures are logged once per outage.
func (m *Manager) Ensure() (Result, error) {
	first := !m.connected

	var err error
	if first {
		err = m.client.Connect()
	} else {
		err = m.client.Reconnect()
	}

	if err != nil {
		m.state = StateDisconnected
		if m.notices.Fail(notice.ClassPeer) {
			if first {
				m.logger.Warn("Could not connect to Discord. Waiting for Discord to start...", zap.Error(err))
			} else {
				m.logger.Warn("Lost connection to Discord. Waiting for Discord to restart...", zap.Error(err))
			}
		}
		return ResultReconnect, err
	}

	recovered := m.notices.Recover(notice.ClassPeer)
	switch {
	case first:
		m.logger.Info("Connected to Discord")
	case recovered:
		m.logger.Info("Reconnected to Discord")
	}

	m.connected = true
	m.state = StateConnected
	// a fresh session never carries the previous activity
	m.published = false
	return ResultOK, nil
}

// Publish sends an activity. Only valid while connected.
func (m *Manager) Publish(activity domain.Activity) (Result, error) {
	if m.state != StateConnected {
		return ResultReconnect, domain.ErrNotConnected
	}

	m.state = StatePublishing
	err := m.client.SetActivity(activity)
	switch {
	case err == nil:
		m.state = StateConnected
		m.published = true
		return ResultOK, nil
	case errors.Is(err, domain.ErrActivityRejected):
		m.state = StateConnected
		m.logger.Error("Discord rejected the activity", zap.Error(err))
		return ResultFatal, err
	default:
		m.logger.Debug("Publishing activity failed, dropping connection", zap.Error(err))
		if cerr := m.client.Close(); cerr != nil {
			m.logger.Debug("Error closing presence client", zap.Error(cerr))
		}
		m.state = StateDisconnected
		m.published = false
		return ResultReconnect, err
	}
}

// Clear removes the published activity, if any. On failure it reconnects
// once and retries once. It never returns an error.
func (m *Manager) Clear() Result {
	if !m.published {
		return ResultOK
	}

	err := m.client.ClearActivity()
	if err == nil {
		m.published = false
		return ResultOK
	}
	m.logger.Debug("Clearing activity failed, retrying after reconnect", zap.Error(err))

	if err := m.client.Reconnect(); err != nil {
		m.logger.Debug("Reconnect during clear failed", zap.Error(err))
		m.state = StateDisconnected
		return ResultReconnect
	}
	m.state = StateConnected

	if err := m.client.ClearActivity(); err != nil {
		m.logger.Debug("Clearing activity failed again", zap.Error(err))
		return ResultReconnect
	}
	m.published = false
	return ResultOK
}

// ResetNotices re-arms the peer failure notice
func (m *Manager) ResetNotices() {
	m.notices.Reset(notice.ClassPeer)
}

// Shutdown clears any activity and closes the client
func (m *Manager) Shutdown() error {
	m.Clear()
	m.state = StateDisconnected
	m.published = false
	return m.client.Close()
}
