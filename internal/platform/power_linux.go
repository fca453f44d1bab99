//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"respite/internal/core/sysevents"
)

// powerSource listens on D-Bus: logind's PrepareForSleep on the system
// bus for suspend/resume, and the ScreenSaver ActiveChanged signal on
// the session bus for lock/unlock.
type powerSource struct {
	mu          sync.Mutex
	systemConn  *dbus.Conn
	sessionConn *dbus.Conn
	out         chan sysevents.Signal
	stopCh      chan struct{}
	running     bool
}

func newPowerSource() PowerSource {
	return &powerSource{}
}

func (source *powerSource) Start() (<-chan sysevents.Signal, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.running {
		return source.out, nil
	}

	systemConn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	if err := systemConn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.login1.Manager"),
		dbus.WithMatchMember("PrepareForSleep"),
	); err != nil {
		_ = systemConn.Close()
		return nil, fmt.Errorf("subscribe PrepareForSleep: %w", err)
	}

	// Lock/unlock is best-effort: not every desktop exposes the
	// freedesktop ScreenSaver interface.
	sessionConn, err := dbus.ConnectSessionBus()
	if err == nil {
		if err := sessionConn.AddMatchSignal(
			dbus.WithMatchInterface("org.freedesktop.ScreenSaver"),
			dbus.WithMatchMember("ActiveChanged"),
		); err != nil {
			_ = sessionConn.Close()
			sessionConn = nil
		}
	} else {
		sessionConn = nil
	}

	// Each connection owns its channel: on Close the bus library closes
	// the channels it was handed, so they must not be shared.
	systemRaw := make(chan *dbus.Signal, 16)
	systemConn.Signal(systemRaw)
	var sessionRaw chan *dbus.Signal
	if sessionConn != nil {
		sessionRaw = make(chan *dbus.Signal, 16)
		sessionConn.Signal(sessionRaw)
	}

	source.systemConn = systemConn
	source.sessionConn = sessionConn
	source.out = make(chan sysevents.Signal, 16)
	source.stopCh = make(chan struct{})
	source.running = true

	go source.translate(systemRaw, sessionRaw, source.out, source.stopCh)
	return source.out, nil
}

func (source *powerSource) Stop() {
	source.mu.Lock()
	defer source.mu.Unlock()
	if !source.running {
		return
	}
	source.running = false
	close(source.stopCh)
	_ = source.systemConn.Close()
	source.systemConn = nil
	if source.sessionConn != nil {
		_ = source.sessionConn.Close()
		source.sessionConn = nil
	}
}

func (source *powerSource) translate(systemRaw, sessionRaw <-chan *dbus.Signal, out chan<- sysevents.Signal, stopCh <-chan struct{}) {
	defer close(out)
	for {
		var signal *dbus.Signal
		var ok bool
		select {
		case <-stopCh:
			return
		case signal, ok = <-systemRaw:
		case signal, ok = <-sessionRaw:
		}
		if !ok {
			return
		}

		normalized, ok := normalizeSignal(signal)
		if !ok {
			continue
		}
		select {
		case out <- normalized:
		case <-stopCh:
			return
		}
	}
}

func normalizeSignal(signal *dbus.Signal) (sysevents.Signal, bool) {
	if signal == nil || len(signal.Body) == 0 {
		return 0, false
	}
	active, ok := signal.Body[0].(bool)
	if !ok {
		return 0, false
	}

	switch signal.Name {
	case "org.freedesktop.login1.Manager.PrepareForSleep":
		if active {
			return sysevents.SignalWillSleep, true
		}
		return sysevents.SignalDidWake, true
	case "org.freedesktop.ScreenSaver.ActiveChanged":
		if active {
			return sysevents.SignalDisplaySleep, true
		}
		return sysevents.SignalDisplayWake, true
	}
	return 0, false
}
