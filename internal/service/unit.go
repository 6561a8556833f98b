package service

import (
	"context"
	"fmt"
	"os/exec"
)

// UnitName is the systemd user unit running the daemon
const UnitName = "presenced.service"

// Runner executes an external command and returns its combined output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// UnitFile renders the unit for the given executable
func UnitFile(executable string) string {
	return fmt.Sprintf(`[Unit]
Description=Discord rich presence for MPRIS music players
After=network.target

[Service]
ExecStart=%s
Restart=always
RestartSec=10
StandardOutput=journal
StandardError=journal

[Install]
WantedBy=default.target
`, executable)
}
