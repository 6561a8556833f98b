package presence

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"
)

// opcode is the first header word of every IPC frame
type opcode uint32

const (
	opHandshake opcode = 0
	opFrame     opcode = 1
	opClose     opcode = 2
	opPing      opcode = 3
	opPong      opcode = 4
)

func (o opcode) String() string {
	switch o {
	case opHandshake:
		return "handshake"
	case opFrame:
		return "frame"
	case opClose:
		return "close"
	case opPing:
		return "ping"
	case opPong:
		return "pong"
	default:
		return fmt.Sprintf("opcode(%d)", uint32(o))
	}
}

const (
	_headerSize   = 8
	_maxFrameSize = 64 * 1024
	_maxSockets   = 10
)

// writeFrame sends op|len|payload, both header words little endian
func writeFrame(w io.Writer, op opcode, payload []byte) error {
	buf := make([]byte, _headerSize+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(op))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	copy(buf[_headerSize:], payload)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write %s frame: %w", op, err)
	}
	return nil
}

// readFrame reads one complete frame
func readFrame(r io.Reader) (opcode, []byte, error) {
	var hdr [_headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, fmt.Errorf("read frame header: %w", err)
	}
	op := opcode(binary.LittleEndian.Uint32(hdr[0:4]))
	n := binary.LittleEndian.Uint32(hdr[4:8])
	if n > _maxFrameSize {
		return 0, nil, fmt.Errorf("frame too large: %d bytes", n)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("read %s payload: %w", op, err)
	}
	return op, payload, nil
}

// socketCandidates lists every path a Discord client may listen on, in probe order.
// Flatpak and Snap installs put the socket in a sub-directory of the runtime dir.
func socketCandidates() []string {
	var dirs []string
	for _, env := range []string{"XDG_RUNTIME_DIR", "TMPDIR", "TMP", "TEMP"} {
		if v := os.Getenv(env); v != "" {
			dirs = append(dirs, v)
		}
	}
	dirs = append(dirs, "/tmp")

	subdirs := []string{"", "app/com.discordapp.Discord", "snap.discord"}

	var paths []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		for _, sub := range subdirs {
			for i := 0; i < _maxSockets; i++ {
				p := filepath.Join(dir, sub, fmt.Sprintf("discord-ipc-%d", i))
				if !seen[p] {
					seen[p] = true
					paths = append(paths, p)
				}
			}
		}
	}
	return paths
}

// dialSocket connects to the first Discord IPC socket that accepts a connection
func dialSocket(timeout time.Duration) (net.Conn, error) {
	var lastErr error
	for _, path := range socketCandidates() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		conn, err := net.DialTimeout("unix", path, timeout)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no discord-ipc socket found")
	}
	return nil, lastErr
}
