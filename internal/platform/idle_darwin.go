//go:build darwin

package platform

import (
	"time"

	"respite/internal/core/idle"
)

type idleProbe struct{}

func newIdleProbe() idle.Probe {
	return &idleProbe{}
}

func (probe *idleProbe) IdleDuration() (time.Duration, error) {
	return 0, idle.ErrUnsupported
}
