package scheduler

import "time"

// Phase represents the current scheduler lifecycle state.
type Phase string

const (
	PhaseWorking   Phase = "working"
	PhasePreNotice Phase = "pre_notice"
	PhaseBreak     Phase = "break"
)

// CommandType defines the type of command emitted to observers.
type CommandType string

const (
	// CommandShowBreak asks the UI to present the break window.
	CommandShowBreak CommandType = "show_break"
	// CommandShowPreNotice asks the UI to present the pre-break notice.
	CommandShowPreNotice CommandType = "show_pre_notice"
	// CommandHideNotifications asks the UI to retract break and notice
	// windows.
	CommandHideNotifications CommandType = "hide_notifications"
	// CommandBreakFinished reports that the break countdown reached
	// zero. The break phase itself ends only on RequestBreakEnd.
	CommandBreakFinished CommandType = "break_finished"
	// CommandTick carries countdown progress for display.
	CommandTick CommandType = "tick"
)

// Command represents a scheduler update for observers. Delivery is
// best-effort; observers that fall behind lose commands but the
// scheduler's own state always advances.
type Command struct {
	Type           CommandType
	Phase          Phase
	TimeUntilBreak time.Duration
	BreakCountdown time.Duration
	At             time.Time
}
