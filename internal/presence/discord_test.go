package presence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/genricoloni/presenced/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const _readyFrame = `{"cmd":"DISPATCH","evt":"READY","data":{"v":1}}`

func newPipeClient(t *testing.T) (*DiscordClient, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})

	c := &DiscordClient{
		logger:   zap.NewNop(),
		clientID: "123",
		pid:      42,
		timeout:  time.Second,
		dial: func(time.Duration) (net.Conn, error) {
			return client, nil
		},
	}
	return c, server
}

// acceptHandshake plays the Discord side of the handshake
func acceptHandshake(server net.Conn) (handshake, error) {
	var h handshake
	op, data, err := readFrame(server)
	if err != nil {
		return h, err
	}
	if op != opHandshake {
		return h, fmt.Errorf("expected handshake, got %s", op)
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return h, err
	}
	return h, writeFrame(server, opFrame, []byte(_readyFrame))
}

// answer reads one command and replies to it with evt and data
func answer(server net.Conn, evt, data string) (command, []byte, error) {
	var cmd command
	op, raw, err := readFrame(server)
	if err != nil {
		return cmd, nil, err
	}
	if op != opFrame {
		return cmd, nil, fmt.Errorf("expected frame, got %s", op)
	}
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return cmd, nil, err
	}
	reply := fmt.Sprintf(`{"cmd":%q,"evt":%q,"nonce":%q,"data":%s}`, cmd.Cmd, evt, cmd.Nonce, data)
	return cmd, raw, writeFrame(server, opFrame, []byte(reply))
}

func connectPipe(t *testing.T) (*DiscordClient, net.Conn) {
	t.Helper()
	c, server := newPipeClient(t)

	errc := make(chan error, 1)
	go func() {
		_, err := acceptHandshake(server)
		errc <- err
	}()

	require.NoError(t, c.Connect())
	require.NoError(t, <-errc)
	return c, server
}

func TestFrameCodec(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, opFrame, []byte(`{"a":1}`)))

	raw := buf.Bytes()
	assert.Equal(t, []byte{1, 0, 0, 0, 7, 0, 0, 0}, raw[:8], "header is opcode and length, little endian")

	op, payload, err := readFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, opFrame, op)
	assert.Equal(t, `{"a":1}`, string(payload))
}

func TestReadFrame_Errors(t *testing.T) {
	t.Run("Truncated Header", func(t *testing.T) {
		_, _, err := readFrame(bytes.NewReader([]byte{1, 0, 0}))
		assert.Error(t, err)
	})

	t.Run("Oversized Frame", func(t *testing.T) {
		hdr := []byte{1, 0, 0, 0, 0, 0, 0, 1} // 16 MiB
		_, _, err := readFrame(bytes.NewReader(hdr))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("Truncated Payload", func(t *testing.T) {
		_, _, err := readFrame(bytes.NewReader([]byte{1, 0, 0, 0, 5, 0, 0, 0, '{'}))
		assert.Error(t, err)
	})
}

func TestDiscordClient_Connect(t *testing.T) {
	c, server := newPipeClient(t)

	type result struct {
		h   handshake
		err error
	}
	done := make(chan result, 1)
	go func() {
		h, err := acceptHandshake(server)
		done <- result{h, err}
	}()

	require.NoError(t, c.Connect())
	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, 1, r.h.Version)
	assert.Equal(t, "123", r.h.ClientID)

	// a second Connect reuses the open socket
	assert.NoError(t, c.Connect())
}

func TestDiscordClient_HandshakeRefused(t *testing.T) {
	c, server := newPipeClient(t)

	go func() {
		if _, _, err := readFrame(server); err != nil {
			return
		}
		_ = writeFrame(server, opClose, []byte(`{"code":4000,"message":"Invalid Client ID"}`))
	}()

	err := c.Connect()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPeerUnavailable))
	assert.Contains(t, err.Error(), "Invalid Client ID")
	assert.Nil(t, c.conn)
}

func TestDiscordClient_DialFailure(t *testing.T) {
	c := &DiscordClient{
		logger:  zap.NewNop(),
		timeout: time.Second,
		dial: func(time.Duration) (net.Conn, error) {
			return nil, errors.New("connection refused")
		},
	}

	err := c.Connect()
	assert.True(t, errors.Is(err, domain.ErrPeerUnavailable))
}

func TestDiscordClient_SetActivity(t *testing.T) {
	c, server := connectPipe(t)

	type result struct {
		cmd command
		err error
	}
	done := make(chan result, 1)
	go func() {
		cmd, _, err := answer(server, "", `{}`)
		done <- result{cmd, err}
	}()

	err := c.SetActivity(domain.Activity{
		Details: "T ",
		State:   "by: A",
		Type:    domain.ActivityListening,
		Assets: domain.Assets{
			LargeImage: "http://img/x.jpg",
			LargeText:  "album: B",
			SmallImage: "playing",
			SmallText:  "playing",
		},
		Timestamps: &domain.Timestamps{Start: 1000, End: 1200},
		Buttons:    []domain.Button{{Label: "Search this song on YouTube", URL: "https://www.youtube.com/results?search_query=A+-+T"}},
	})
	require.NoError(t, err)

	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, "SET_ACTIVITY", r.cmd.Cmd)
	assert.NotEmpty(t, r.cmd.Nonce)
	assert.Equal(t, 42, r.cmd.Args.PID)
	require.NotNil(t, r.cmd.Args.Activity)

	a := r.cmd.Args.Activity
	assert.Equal(t, "T ", a.Details)
	assert.Equal(t, "by: A", a.State)
	assert.Equal(t, 2, a.Type)
	assert.Equal(t, "http://img/x.jpg", a.Assets.LargeImage)
	assert.Equal(t, &wireTimestamps{Start: 1000, End: 1200}, a.Timestamps)
	require.Len(t, a.Buttons, 1)
	assert.Equal(t, "Search this song on YouTube", a.Buttons[0].Label)
}

func TestDiscordClient_SetActivityRejected(t *testing.T) {
	c, server := connectPipe(t)

	go func() {
		_, _, _ = answer(server, "ERROR", `{"code":4000,"message":"child \"activity\" fails"}`)
	}()

	err := c.SetActivity(domain.Activity{Details: "T "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrActivityRejected))
	assert.Contains(t, err.Error(), "fails")
	assert.NotNil(t, c.conn, "a rejected activity keeps the connection")
}

func TestDiscordClient_AnswersPing(t *testing.T) {
	c, server := connectPipe(t)

	errc := make(chan error, 1)
	go func() {
		op, raw, err := readFrame(server)
		if err != nil {
			errc <- err
			return
		}
		if op != opFrame {
			errc <- fmt.Errorf("expected frame, got %s", op)
			return
		}
		var cmd command
		_ = json.Unmarshal(raw, &cmd)

		if err := writeFrame(server, opPing, []byte(`{"p":1}`)); err != nil {
			errc <- err
			return
		}
		op, data, err := readFrame(server)
		if err != nil {
			errc <- err
			return
		}
		if op != opPong || string(data) != `{"p":1}` {
			errc <- fmt.Errorf("expected pong echo, got %s %s", op, data)
			return
		}
		// unrelated dispatch before the real reply
		_ = writeFrame(server, opFrame, []byte(`{"cmd":"DISPATCH","evt":"ACTIVITY_JOIN","nonce":"other"}`))
		errc <- writeFrame(server, opFrame, []byte(fmt.Sprintf(`{"cmd":"SET_ACTIVITY","nonce":%q,"data":{}}`, cmd.Nonce)))
	}()

	require.NoError(t, c.SetActivity(domain.Activity{Details: "T "}))
	require.NoError(t, <-errc)
}

func TestDiscordClient_PeerHangsUp(t *testing.T) {
	c, server := connectPipe(t)

	go func() {
		_, _, _ = readFrame(server)
		_ = server.Close()
	}()

	err := c.SetActivity(domain.Activity{Details: "T "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPeerUnavailable))
	assert.Nil(t, c.conn, "transport failure drops the socket")

	assert.ErrorIs(t, c.ClearActivity(), domain.ErrNotConnected)
}

func TestDiscordClient_ClearActivity(t *testing.T) {
	c, server := connectPipe(t)

	type result struct {
		cmd command
		raw []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		cmd, raw, err := answer(server, "", `null`)
		done <- result{cmd, raw, err}
	}()

	require.NoError(t, c.ClearActivity())
	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, "SET_ACTIVITY", r.cmd.Cmd)
	assert.Nil(t, r.cmd.Args.Activity)
	assert.NotContains(t, string(r.raw), `"activity"`)
}

func TestDiscordClient_Close(t *testing.T) {
	c, server := connectPipe(t)

	ops := make(chan opcode, 1)
	go func() {
		op, _, err := readFrame(server)
		if err == nil {
			ops <- op
		}
		close(ops)
	}()

	require.NoError(t, c.Close())
	assert.Equal(t, opClose, <-ops)
	assert.Nil(t, c.conn)
	assert.NoError(t, c.Close(), "closing twice is a no-op")
}

func TestToWire_Limits(t *testing.T) {
	long := strings.Repeat("é", 200)
	w := toWire(domain.Activity{
		Details: long,
		State:   "short",
		Buttons: []domain.Button{
			{Label: "one", URL: "https://a"},
			{Label: "two", URL: "https://b"},
			{Label: "three", URL: "https://c"},
		},
	})

	assert.Equal(t, 128, len([]rune(w.Details)))
	assert.Equal(t, "short", w.State)
	assert.Len(t, w.Buttons, 2)
	assert.Nil(t, w.Timestamps)
}

func TestSocketCandidates(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("TMPDIR", "")
	t.Setenv("TMP", "")
	t.Setenv("TEMP", "")

	paths := socketCandidates()
	require.NotEmpty(t, paths)
	assert.Equal(t, "/run/user/1000/discord-ipc-0", paths[0])
	assert.Contains(t, paths, "/run/user/1000/app/com.discordapp.Discord/discord-ipc-0")
	assert.Contains(t, paths, "/run/user/1000/snap.discord/discord-ipc-3")
	assert.Contains(t, paths, "/tmp/discord-ipc-9")
	assert.Len(t, paths, 2*3*_maxSockets)
}

func TestDialSocket(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)

	ln, err := net.Listen("unix", filepath.Join(dir, "discord-ipc-0"))
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err == nil {
			_ = conn.Close()
		}
	}()

	conn, err := dialSocket(time.Second)
	require.NoError(t, err)
	_ = conn.Close()
}
