package presence

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"
	"unicode/utf8"

	"github.com/genricoloni/presenced/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	_ioTimeout   = 5 * time.Second
	_maxTextLen  = 128
	_maxButtons  = 2
	_evtReady    = "READY"
	_evtError    = "ERROR"
	_cmdActivity = "SET_ACTIVITY"
)

type handshake struct {
	Version  int    `json:"v"`
	ClientID string `json:"client_id"`
}

type command struct {
	Cmd   string       `json:"cmd"`
	Args  activityArgs `json:"args"`
	Nonce string       `json:"nonce"`
}

type activityArgs struct {
	PID      int           `json:"pid"`
	Activity *wireActivity `json:"activity,omitempty"`
}

type wireActivity struct {
	State      string          `json:"state,omitempty"`
	Details    string          `json:"details,omitempty"`
	Type       int             `json:"type"`
	Assets     *wireAssets     `json:"assets,omitempty"`
	Timestamps *wireTimestamps `json:"timestamps,omitempty"`
	Buttons    []wireButton    `json:"buttons,omitempty"`
}

type wireAssets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}

type wireTimestamps struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

type wireButton struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type response struct {
	Cmd   string          `json:"cmd"`
	Evt   string          `json:"evt"`
	Nonce string          `json:"nonce"`
	Data  json.RawMessage `json:"data"`
}

type errorData struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DiscordClient talks to the local Discord client over its IPC socket.
// It is not safe for concurrent use.
type DiscordClient struct {
	logger   *zap.Logger
	clientID string
	pid      int
	timeout  time.Duration
	dial     func(timeout time.Duration) (net.Conn, error)
	conn     net.Conn
}

// NewDiscordClient creates a client for the configured application id
func NewDiscordClient(logger *zap.Logger, cfg domain.Config) *DiscordClient {
	return &DiscordClient{
		logger:   logger,
		clientID: cfg.GetClientID(),
		pid:      os.Getpid(),
		timeout:  _ioTimeout,
		dial:     dialSocket,
	}
}

// Connect opens the socket and performs the handshake. It is a no-op when
// a connection is already open.
func (c *DiscordClient) Connect() error {
	if c.conn != nil {
		return nil
	}
	return c.open()
}

// Reconnect drops the current socket, if any, and handshakes again
func (c *DiscordClient) Reconnect() error {
	c.drop()
	return c.open()
}

// SetActivity publishes an activity
func (c *DiscordClient) SetActivity(activity domain.Activity) error {
	return c.send(toWire(activity))
}

// ClearActivity removes the current activity
func (c *DiscordClient) ClearActivity() error {
	return c.send(nil)
}

// Close sends a close frame and releases the socket
func (c *DiscordClient) Close() error {
	if c.conn == nil {
		return nil
	}
	_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	_ = writeFrame(c.conn, opClose, []byte("{}"))
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *DiscordClient) open() error {
	conn, err := c.dial(c.timeout)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPeerUnavailable, err)
	}
	c.conn = conn

	if err := c.handshake(); err != nil {
		c.drop()
		return err
	}
	c.logger.Debug("Discord IPC handshake complete", zap.String("clientID", c.clientID))
	return nil
}

func (c *DiscordClient) handshake() error {
	payload, err := json.Marshal(handshake{Version: 1, ClientID: c.clientID})
	if err != nil {
		return err
	}
	_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	if err := writeFrame(c.conn, opHandshake, payload); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPeerUnavailable, err)
	}

	for {
		op, data, err := readFrame(c.conn)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrPeerUnavailable, err)
		}
		switch op {
		case opClose:
			return fmt.Errorf("%w: handshake refused: %s", domain.ErrPeerUnavailable, closeReason(data))
		case opPing:
			if err := writeFrame(c.conn, opPong, data); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrPeerUnavailable, err)
			}
		case opFrame:
			var resp response
			if err := json.Unmarshal(data, &resp); err != nil {
				return fmt.Errorf("%w: malformed handshake reply: %w", domain.ErrPeerUnavailable, err)
			}
			if resp.Evt == _evtReady {
				return nil
			}
		}
	}
}

// send issues SET_ACTIVITY and waits for the matching reply.
// Transport failures drop the socket; an ERROR reply leaves it open.
func (c *DiscordClient) send(activity *wireActivity) error {
	if c.conn == nil {
		return domain.ErrNotConnected
	}

	cmd := command{
		Cmd:   _cmdActivity,
		Args:  activityArgs{PID: c.pid, Activity: activity},
		Nonce: uuid.NewString(),
	}
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}

	_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	if err := writeFrame(c.conn, opFrame, payload); err != nil {
		c.drop()
		return fmt.Errorf("%w: %w", domain.ErrPeerUnavailable, err)
	}

	for {
		op, data, err := readFrame(c.conn)
		if err != nil {
			c.drop()
			return fmt.Errorf("%w: %w", domain.ErrPeerUnavailable, err)
		}
		switch op {
		case opClose:
			c.drop()
			return fmt.Errorf("%w: closed by peer: %s", domain.ErrPeerUnavailable, closeReason(data))
		case opPing:
			if err := writeFrame(c.conn, opPong, data); err != nil {
				c.drop()
				return fmt.Errorf("%w: %w", domain.ErrPeerUnavailable, err)
			}
		case opFrame:
			var resp response
			if err := json.Unmarshal(data, &resp); err != nil {
				c.drop()
				return fmt.Errorf("%w: malformed reply: %w", domain.ErrPeerUnavailable, err)
			}
			if resp.Nonce != cmd.Nonce {
				continue
			}
			if resp.Evt == _evtError {
				var e errorData
				_ = json.Unmarshal(resp.Data, &e)
				return fmt.Errorf("%w: %s (code %d)", domain.ErrActivityRejected, e.Message, e.Code)
			}
			return nil
		}
	}
}

func (c *DiscordClient) drop() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

func closeReason(data []byte) string {
	var e errorData
	if err := json.Unmarshal(data, &e); err != nil || e.Message == "" {
		return string(data)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// toWire converts an activity to its IPC shape, enforcing Discord's field limits
func toWire(a domain.Activity) *wireActivity {
	w := &wireActivity{
		State:   truncate(a.State),
		Details: truncate(a.Details),
		Type:    int(a.Type),
		Assets: &wireAssets{
			LargeImage: a.Assets.LargeImage,
			LargeText:  truncate(a.Assets.LargeText),
			SmallImage: a.Assets.SmallImage,
			SmallText:  truncate(a.Assets.SmallText),
		},
	}
	if a.Timestamps != nil && (a.Timestamps.Start != 0 || a.Timestamps.End != 0) {
		w.Timestamps = &wireTimestamps{Start: a.Timestamps.Start, End: a.Timestamps.End}
	}
	for i, b := range a.Buttons {
		if i == _maxButtons {
			break
		}
		w.Buttons = append(w.Buttons, wireButton{Label: truncate(b.Label), URL: b.URL})
	}
	return w
}

// truncate cuts s to Discord's 128 character limit without splitting a rune
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= _maxTextLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:_maxTextLen])
}
