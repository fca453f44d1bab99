//go:build linux

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"respite/internal/core/idle"
)

// idleProbe shells out to xprintidle, which already reports the
// minimum idle time across all X input classes in milliseconds.
type idleProbe struct {
	xprintidlePath string
}

type unsupportedIdleProbe struct{}

func newIdleProbe() idle.Probe {
	// xprintidle talks to X; under pure Wayland it answers for the
	// XWayland server only, which never sees native input.
	if strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) == "wayland" {
		return unsupportedIdleProbe{}
	}
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProbe{}
	}
	return &idleProbe{xprintidlePath: path}
}

func (probe *idleProbe) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(probe.xprintidlePath).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (unsupportedIdleProbe) IdleDuration() (time.Duration, error) {
	return 0, idle.ErrUnsupported
}
