//go:build windows

package platform

import "respite/internal/core/sysevents"

// Suspend/resume notifications on Windows require a message window for
// WM_POWERBROADCAST, which the GUI toolkit does not expose. Until then
// the scheduler runs without system signals here.
type powerSource struct{}

func newPowerSource() PowerSource {
	return powerSource{}
}

func (powerSource) Start() (<-chan sysevents.Signal, error) {
	return nil, ErrPowerEventsUnsupported
}

func (powerSource) Stop() {}
