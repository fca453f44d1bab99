//go:build darwin

package platform

import "respite/internal/core/sysevents"

type powerSource struct{}

func newPowerSource() PowerSource {
	return powerSource{}
}

func (powerSource) Start() (<-chan sysevents.Signal, error) {
	return nil, ErrPowerEventsUnsupported
}

func (powerSource) Stop() {}
