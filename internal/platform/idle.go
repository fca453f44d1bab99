package platform

import "respite/internal/core/idle"

// NewIdleProbe returns a platform-specific input-recency probe. The
// probe reports the minimum elapsed time across keyboard, mouse-click,
// and mouse-move input; where the OS cannot answer, every call returns
// idle.ErrUnsupported and the monitor falls back to "assume active".
func NewIdleProbe() idle.Probe {
	return newIdleProbe()
}
