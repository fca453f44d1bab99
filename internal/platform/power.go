package platform

import (
	"errors"

	"respite/internal/core/sysevents"
)

// ErrPowerEventsUnsupported indicates the host cannot report
// sleep/wake/lock transitions. The scheduler then simply never sees a
// system-inactive signal, which degrades to "always active".
var ErrPowerEventsUnsupported = errors.New("power event monitoring unsupported")

// PowerSource emits raw OS power and lock signals. Each physical
// transition is delivered at most once; the sysevents bridge
// deduplicates defensively on top of that.
type PowerSource interface {
	// Start begins monitoring and returns the signal stream. The
	// channel closes on Stop.
	Start() (<-chan sysevents.Signal, error)
	Stop()
}

// NewPowerSource returns a platform-specific power signal source.
func NewPowerSource() PowerSource {
	return newPowerSource()
}
