// Package sysevents normalizes raw OS power and lock notifications
// into a single active/inactive signal for the scheduler.
package sysevents

import "sync"

// Signal is a raw OS-level notification.
type Signal int

const (
	// SignalWillSleep fires before the system suspends.
	SignalWillSleep Signal = iota
	// SignalDidWake fires after the system resumes.
	SignalDidWake
	// SignalDisplaySleep fires when the display locks or blanks.
	SignalDisplaySleep
	// SignalDisplayWake fires when the display unlocks.
	SignalDisplayWake
)

// Consumer receives the normalized signals. The scheduler implements
// this interface.
type Consumer interface {
	SystemInactive()
	SystemActive()
}

// Bridge folds the four raw signals into inactive/active and drops
// repeats: a second inactive while already inactive is swallowed even
// though the consumer is expected to deduplicate as well.
type Bridge struct {
	mu       sync.Mutex
	consumer Consumer
	inactive bool
}

// NewBridge creates a Bridge delivering to consumer.
func NewBridge(consumer Consumer) *Bridge {
	return &Bridge{consumer: consumer}
}

// Handle processes one raw signal. Unknown signal values are ignored.
func (bridge *Bridge) Handle(signal Signal) {
	switch signal {
	case SignalWillSleep, SignalDisplaySleep:
		bridge.deliver(true)
	case SignalDidWake, SignalDisplayWake:
		bridge.deliver(false)
	}
}

// Run consumes raw signals from a channel until it closes. Intended to
// sit between a platform signal source and the scheduler.
func (bridge *Bridge) Run(signals <-chan Signal) {
	for signal := range signals {
		bridge.Handle(signal)
	}
}

// Inactive reports whether the bridge currently considers the system
// inactive.
func (bridge *Bridge) Inactive() bool {
	bridge.mu.Lock()
	defer bridge.mu.Unlock()
	return bridge.inactive
}

func (bridge *Bridge) deliver(inactive bool) {
	bridge.mu.Lock()
	if bridge.inactive == inactive {
		bridge.mu.Unlock()
		return
	}
	bridge.inactive = inactive
	consumer := bridge.consumer
	bridge.mu.Unlock()

	if consumer == nil {
		return
	}
	if inactive {
		consumer.SystemInactive()
	} else {
		consumer.SystemActive()
	}
}
