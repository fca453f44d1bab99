// Package logging configures the application logger.
package logging

import (
	"os"
	"time"

	clog "github.com/charmbracelet/log"
)

// New returns a leveled stderr logger. Debug output is gated behind
// the RESPITE_DEBUG environment variable.
func New(component string) *clog.Logger {
	level := clog.InfoLevel
	if os.Getenv("RESPITE_DEBUG") != "" {
		level = clog.DebugLevel
	}
	logger := clog.NewWithOptions(os.Stderr, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	if component != "" {
		logger = logger.With("component", component)
	}
	return logger
}
