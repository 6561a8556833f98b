//go:build !linux
// +build !linux

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrUnsupported is returned on platforms without systemd user units
var ErrUnsupported = errors.New("service management is only supported on Linux")

// StubManager is a placeholder for unsupported platforms
type StubManager struct {
	logger *zap.Logger
}

// NewManager creates a stub manager for unsupported platforms
func NewManager(logger *zap.Logger) *StubManager {
	return &StubManager{logger: logger}
}

func (m *StubManager) Enable(ctx context.Context) error  { return ErrUnsupported }
func (m *StubManager) Disable(ctx context.Context) error { return ErrUnsupported }
func (m *StubManager) Restart(ctx context.Context) error { return ErrUnsupported }
