// Package idle classifies the user as idle or active by polling an
// input-recency probe and reporting transitions edge-triggered.
package idle

import (
	"errors"
	"sync"
	"time"
)

// ErrUnsupported indicates idle detection is not available on this
// system.
var ErrUnsupported = errors.New("idle detection unsupported")

// Probe reports the elapsed time since the most recent keyboard,
// mouse-click, or mouse-move input, as a single minimum value.
type Probe interface {
	IdleDuration() (time.Duration, error)
}

// Callbacks receive idle transitions. Both are optional and are
// invoked off the monitor's lock, once per classification flip.
type Callbacks struct {
	OnIdle   func()
	OnActive func()
}

// Monitor polls a Probe and raises idle/active transitions against a
// mutable threshold. It can be stopped and restarted independently of
// anything that consumes its transitions.
type Monitor struct {
	mu           sync.Mutex
	probe        Probe
	callbacks    Callbacks
	threshold    time.Duration
	pollInterval time.Duration
	lastObserved time.Duration
	isIdle       bool
	unsupported  bool
	running      bool
	stopCh       chan struct{}
}

// NewMonitor creates a Monitor. A non-positive poll interval defaults
// to five seconds.
func NewMonitor(probe Probe, threshold, pollInterval time.Duration, callbacks Callbacks) *Monitor {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &Monitor{
		probe:        probe,
		callbacks:    callbacks,
		threshold:    threshold,
		pollInterval: pollInterval,
	}
}

// Start begins periodic sampling. No-op if already running or the
// probe has reported itself unsupported.
func (monitor *Monitor) Start() {
	monitor.mu.Lock()
	if monitor.running || monitor.unsupported || monitor.probe == nil {
		monitor.mu.Unlock()
		return
	}
	monitor.running = true
	stopCh := make(chan struct{})
	monitor.stopCh = stopCh
	interval := monitor.pollInterval
	monitor.mu.Unlock()

	go monitor.run(stopCh, interval)
}

// Stop cancels periodic sampling. The idle classification is retained,
// so a later Start continues edge-triggered from the last state.
func (monitor *Monitor) Stop() {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	if !monitor.running {
		return
	}
	monitor.running = false
	close(monitor.stopCh)
	monitor.stopCh = nil
}

// IsIdle reports the current classification.
func (monitor *Monitor) IsIdle() bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.isIdle
}

// UpdateThreshold changes the idle threshold. If the new threshold
// flips the classification of the last observed idle duration, the
// transition fires immediately instead of waiting for the next poll.
func (monitor *Monitor) UpdateThreshold(threshold time.Duration) {
	monitor.mu.Lock()
	monitor.threshold = threshold
	notify := monitor.reclassifyLocked(monitor.lastObserved)
	monitor.mu.Unlock()

	if notify != nil {
		notify()
	}
}

func (monitor *Monitor) run(stopCh chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			monitor.poll()
		}
	}
}

func (monitor *Monitor) poll() {
	observed, err := monitor.probe.IdleDuration()

	monitor.mu.Lock()
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			monitor.unsupported = true
			monitor.running = false
			if monitor.stopCh != nil {
				close(monitor.stopCh)
				monitor.stopCh = nil
			}
		}
		// Missing data never forces an idle transition: assume active.
		observed = 0
	}
	monitor.lastObserved = observed
	notify := monitor.reclassifyLocked(observed)
	monitor.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// reclassifyLocked compares an observation against the threshold and
// returns the transition callback to invoke, or nil when the
// classification did not flip.
func (monitor *Monitor) reclassifyLocked(observed time.Duration) func() {
	idle := monitor.threshold > 0 && observed >= monitor.threshold
	if idle == monitor.isIdle {
		return nil
	}
	monitor.isIdle = idle
	if idle {
		return monitor.callbacks.OnIdle
	}
	return monitor.callbacks.OnActive
}
