//go:build linux
// +build linux

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/genricoloni/presenced/internal/domain"
	"go.uber.org/zap"
)

var _ domain.ServiceManager = (*SystemdManager)(nil)

// SystemdManager controls the daemon as a systemd user unit
type SystemdManager struct {
	logger     *zap.Logger
	unitDir    string
	executable func() (string, error)
	run        Runner
}

// NewManager creates the platform service manager (Linux implementation)
func NewManager(logger *zap.Logger) *SystemdManager {
	return &SystemdManager{
		logger:     logger,
		unitDir:    filepath.Join(xdg.ConfigHome, "systemd", "user"),
		executable: os.Executable,
		run:        execRunner,
	}
}

// UnitPath returns where the unit file is written
func (m *SystemdManager) UnitPath() string {
	return filepath.Join(m.unitDir, UnitName)
}

// Enable writes the unit file, then reloads, enables and starts it
func (m *SystemdManager) Enable(ctx context.Context) error {
	exe, err := m.executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	if err := os.MkdirAll(m.unitDir, 0o755); err != nil {
		return fmt.Errorf("failed to create user systemd services directory: %w", err)
	}
	if err := os.WriteFile(m.UnitPath(), []byte(UnitFile(exe)), 0o644); err != nil {
		return fmt.Errorf("failed to create user systemd service file: %w", err)
	}
	m.logger.Info("Created systemd service file", zap.String("path", m.UnitPath()))

	return m.systemctl(ctx,
		[]string{"daemon-reload"},
		[]string{"enable", UnitName},
		[]string{"start", UnitName},
	)
}

// Disable stops and disables the unit. The unit file is left in place.
func (m *SystemdManager) Disable(ctx context.Context) error {
	return m.systemctl(ctx,
		[]string{"stop", UnitName},
		[]string{"disable", UnitName},
	)
}

// Restart restarts the unit
func (m *SystemdManager) Restart(ctx context.Context) error {
	return m.systemctl(ctx, []string{"restart", UnitName})
}

// systemctl runs each command in turn and stops at the first failure
func (m *SystemdManager) systemctl(ctx context.Context, commands ...[]string) error {
	for _, args := range commands {
		full := append([]string{"--user"}, args...)

		m.logger.Debug("Running systemctl", zap.Strings("args", full))
		output, err := m.run(ctx, "systemctl", full...)
		if err != nil {
			return fmt.Errorf("systemctl %s failed: %w (output: %s)",
				strings.Join(full, " "), err, strings.TrimSpace(string(output)))
		}
		m.logger.Info("systemctl succeeded", zap.String("command", strings.Join(args, " ")))
	}
	return nil
}
