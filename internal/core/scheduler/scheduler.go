package scheduler

import (
	"fmt"
	"sync"
	"time"

	"respite/internal/core/model"
)

// Options contains runtime options for the Scheduler.
type Options struct {
	TickInterval time.Duration
}

// Scheduler is the state machine that owns all break timing. Every
// mutation goes through its event API and is serialized by an internal
// mutex, so callers may invoke it from any goroutine.
type Scheduler struct {
	mu      sync.Mutex
	config  model.SchedulerConfig
	pending *model.SchedulerConfig
	options Options

	phase          Phase
	timeUntilBreak time.Duration
	breakCountdown time.Duration
	workTicking    bool
	breakTicking   bool
	preNoticeShown bool

	systemInactive bool
	pendingResume  bool
	userIdle       bool
	idleWasTicking bool

	tickerActive bool
	stopCh       chan struct{}
	subscribers  []chan Command
	closed       bool
}

// New creates a Scheduler with the provided configuration.
func New(config model.SchedulerConfig, options Options) *Scheduler {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	scheduler := &Scheduler{
		config:  config.Normalized(),
		options: options,
		phase:   PhaseWorking,
	}
	scheduler.timeUntilBreak = scheduler.config.WorkInterval
	return scheduler
}

// Subscribe registers a new observer channel. Commands are delivered
// with non-blocking sends: a slow observer drops commands rather than
// stalling the scheduler.
func (scheduler *Scheduler) Subscribe(buffer int) <-chan Command {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Command, buffer)
	scheduler.mu.Lock()
	scheduler.subscribers = append(scheduler.subscribers, ch)
	scheduler.mu.Unlock()
	return ch
}

// Start begins the work countdown. It is a no-op when scheduling is
// disabled, when a break or notice is active, or when the system or
// user is away.
func (scheduler *Scheduler) Start() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.phase != PhaseWorking {
		return
	}
	scheduler.startWorkIfAllowedLocked()
}

// Stop cancels the periodic tick without changing phase.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.workTicking = false
	scheduler.breakTicking = false
	scheduler.stopTickerLocked()
}

// Close tears the scheduler down: all timers cancelled, observer
// channels closed. The scheduler must not be used afterwards.
func (scheduler *Scheduler) Close() {
	scheduler.mu.Lock()
	if scheduler.closed {
		scheduler.mu.Unlock()
		return
	}
	scheduler.closed = true
	scheduler.workTicking = false
	scheduler.breakTicking = false
	scheduler.stopTickerLocked()
	subscribers := scheduler.subscribers
	scheduler.subscribers = nil
	scheduler.mu.Unlock()

	for _, ch := range subscribers {
		close(ch)
	}
}

// RequestSkipBreak cancels a showing pre-break notice and restarts the
// full work interval. Invalid from any other phase.
func (scheduler *Scheduler) RequestSkipBreak() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.phase != PhasePreNotice {
		return
	}
	scheduler.phase = PhaseWorking
	scheduler.applyPendingConfigLocked()
	scheduler.resetWorkLocked()
	scheduler.emitLocked(Command{
		Type:           CommandHideNotifications,
		Phase:          scheduler.phase,
		TimeUntilBreak: scheduler.timeUntilBreak,
		At:             time.Now(),
	})
	scheduler.startWorkIfAllowedLocked()
}

// RequestBreakNow forces an immediate break from Working or from a
// showing pre-break notice.
func (scheduler *Scheduler) RequestBreakNow() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.phase == PhaseBreak || !scheduler.config.Enabled || scheduler.systemInactive {
		return
	}
	scheduler.enterBreakLocked(time.Now())
}

// RequestPostpone returns from a showing pre-break notice to Working,
// pushing the break out by extendBy without resetting the countdown.
func (scheduler *Scheduler) RequestPostpone(extendBy time.Duration) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.phase != PhasePreNotice || extendBy < 0 {
		return
	}
	scheduler.phase = PhaseWorking
	// The latched config is consumed here too; the extended countdown
	// keeps running, only the next cycle's parameters change.
	scheduler.applyPendingConfigLocked()
	scheduler.timeUntilBreak += extendBy
	scheduler.emitLocked(Command{
		Type:           CommandHideNotifications,
		Phase:          scheduler.phase,
		TimeUntilBreak: scheduler.timeUntilBreak,
		At:             time.Now(),
	})
	scheduler.startWorkIfAllowedLocked()
}

// RequestBreakEnd dismisses an active break and restarts the work
// countdown when the system allows it.
func (scheduler *Scheduler) RequestBreakEnd() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.phase != PhaseBreak {
		return
	}
	scheduler.phase = PhaseWorking
	scheduler.breakTicking = false
	scheduler.breakCountdown = 0
	scheduler.applyPendingConfigLocked()
	scheduler.resetWorkLocked()
	if scheduler.systemInactive {
		// No outward command while the system is inactive; the hide
		// and the restart both happen on wake.
		scheduler.pendingResume = true
		scheduler.stopTickerIfIdleLocked()
		return
	}
	scheduler.emitLocked(Command{
		Type:           CommandHideNotifications,
		Phase:          scheduler.phase,
		TimeUntilBreak: scheduler.timeUntilBreak,
		At:             time.Now(),
	})
	if !scheduler.startWorkIfAllowedLocked() {
		scheduler.stopTickerIfIdleLocked()
	}
}

// AdjustBreakCountdown extends or shortens an active break, clamping
// at zero. Meaningless outside the break phase.
func (scheduler *Scheduler) AdjustBreakCountdown(delta time.Duration) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.phase != PhaseBreak {
		return
	}
	scheduler.breakCountdown += delta
	if scheduler.breakCountdown < 0 {
		scheduler.breakCountdown = 0
	}
	now := time.Now()
	if scheduler.breakCountdown == 0 {
		if scheduler.breakTicking {
			scheduler.breakTicking = false
			scheduler.stopTickerIfIdleLocked()
			scheduler.emitLocked(Command{
				Type:           CommandBreakFinished,
				Phase:          scheduler.phase,
				BreakCountdown: 0,
				At:             now,
			})
		}
		return
	}
	if !scheduler.breakTicking {
		scheduler.breakTicking = true
		scheduler.startTickerLocked()
	}
	scheduler.emitLocked(Command{
		Type:           CommandTick,
		Phase:          scheduler.phase,
		BreakCountdown: scheduler.breakCountdown,
		At:             now,
	})
}

// UpdateConfig delivers an atomic configuration change. Disabling
// takes effect immediately from any phase; all other changes apply
// immediately only in Working and are otherwise latched for the next
// Working entry.
func (scheduler *Scheduler) UpdateConfig(config model.SchedulerConfig) {
	config = config.Normalized()

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if !config.Enabled {
		scheduler.config = config
		scheduler.pending = nil
		scheduler.phase = PhaseWorking
		scheduler.workTicking = false
		scheduler.breakTicking = false
		scheduler.breakCountdown = 0
		scheduler.preNoticeShown = false
		scheduler.pendingResume = false
		scheduler.timeUntilBreak = config.WorkInterval
		scheduler.stopTickerLocked()
		scheduler.emitLocked(Command{
			Type:           CommandHideNotifications,
			Phase:          scheduler.phase,
			TimeUntilBreak: scheduler.timeUntilBreak,
			At:             time.Now(),
		})
		return
	}

	if scheduler.phase != PhaseWorking {
		pending := config
		scheduler.pending = &pending
		return
	}

	scheduler.config = config
	scheduler.pending = nil
	scheduler.workTicking = false
	scheduler.resetWorkLocked()
	scheduler.startWorkIfAllowedLocked()
}

// SystemInactive records a sleep or lock transition. Idempotent. An
// active break is left alone; its window stays up.
func (scheduler *Scheduler) SystemInactive() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.systemInactive {
		return
	}
	scheduler.systemInactive = true
	if scheduler.phase != PhaseWorking {
		return
	}
	scheduler.workTicking = false
	scheduler.stopTickerIfIdleLocked()
	scheduler.emitLocked(Command{
		Type:           CommandHideNotifications,
		Phase:          scheduler.phase,
		TimeUntilBreak: scheduler.timeUntilBreak,
		At:             time.Now(),
	})
}

// SystemActive records a wake or unlock transition. Idempotent. A wake
// in Working always restarts the countdown from the full interval; away
// time is not held against the user.
func (scheduler *Scheduler) SystemActive() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if !scheduler.systemInactive {
		return
	}
	scheduler.systemInactive = false
	if scheduler.phase != PhaseWorking {
		return
	}
	resume := scheduler.pendingResume
	scheduler.pendingResume = false
	scheduler.applyPendingConfigLocked()
	scheduler.resetWorkLocked()
	if resume {
		scheduler.emitLocked(Command{
			Type:           CommandHideNotifications,
			Phase:          scheduler.phase,
			TimeUntilBreak: scheduler.timeUntilBreak,
			At:             time.Now(),
		})
	}
	scheduler.startWorkIfAllowedLocked()
}

// UserIdle records that input stopped past the idle threshold. Only
// acts while Working: the countdown is snapshotted and frozen.
func (scheduler *Scheduler) UserIdle() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.phase != PhaseWorking || scheduler.userIdle {
		return
	}
	scheduler.userIdle = true
	scheduler.idleWasTicking = scheduler.workTicking
	if !scheduler.workTicking {
		return
	}
	scheduler.workTicking = false
	scheduler.stopTickerIfIdleLocked()
	scheduler.emitLocked(Command{
		Type:           CommandHideNotifications,
		Phase:          scheduler.phase,
		TimeUntilBreak: scheduler.timeUntilBreak,
		At:             time.Now(),
	})
}

// UserActive records that input resumed. If the countdown was frozen
// by idle it restarts from the full interval, or is deferred to the
// next wake when the system is inactive.
func (scheduler *Scheduler) UserActive() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	wasTicking := scheduler.idleWasTicking
	scheduler.userIdle = false
	scheduler.idleWasTicking = false
	if !wasTicking || scheduler.phase != PhaseWorking {
		return
	}
	if scheduler.systemInactive {
		scheduler.pendingResume = true
		return
	}
	scheduler.applyPendingConfigLocked()
	scheduler.resetWorkLocked()
	scheduler.startWorkIfAllowedLocked()
}

// Phase returns the current lifecycle phase.
func (scheduler *Scheduler) Phase() Phase {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.phase
}

// TimeUntilBreak returns the current work countdown value.
func (scheduler *Scheduler) TimeUntilBreak() time.Duration {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.timeUntilBreak
}

// BreakCountdown returns the current break countdown value.
func (scheduler *Scheduler) BreakCountdown() time.Duration {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.breakCountdown
}

// FormattedTimeUntilBreak renders the work countdown as MM:SS.
func (scheduler *Scheduler) FormattedTimeUntilBreak() string {
	return FormatClock(scheduler.TimeUntilBreak())
}

// FormattedBreakCountdown renders the break countdown as MM:SS.
func (scheduler *Scheduler) FormattedBreakCountdown() string {
	return FormatClock(scheduler.BreakCountdown())
}

// FormatClock renders a duration as MM:SS, clamping negatives to zero.
func FormatClock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func (scheduler *Scheduler) run(stopCh chan struct{}) {
	ticker := time.NewTicker(scheduler.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			scheduler.tick(tickTime)
		}
	}
}

func (scheduler *Scheduler) tick(now time.Time) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	// Sleep/lock freezes all countdowns and silences commands.
	if scheduler.systemInactive {
		return
	}
	switch scheduler.phase {
	case PhaseWorking, PhasePreNotice:
		if scheduler.workTicking {
			scheduler.advanceWorkLocked(now)
		}
	case PhaseBreak:
		if scheduler.breakTicking {
			scheduler.advanceBreakLocked(now)
		}
	}
}

func (scheduler *Scheduler) advanceWorkLocked(now time.Time) {
	scheduler.timeUntilBreak -= scheduler.options.TickInterval
	if scheduler.timeUntilBreak <= 0 {
		// Reaching zero always wins over a pending pre-notice.
		scheduler.timeUntilBreak = 0
		scheduler.enterBreakLocked(now)
		return
	}

	lead := scheduler.config.PreNoticeLead
	if scheduler.phase == PhaseWorking && !scheduler.preNoticeShown &&
		lead > 0 && scheduler.timeUntilBreak <= lead {
		scheduler.phase = PhasePreNotice
		scheduler.preNoticeShown = true
		scheduler.emitLocked(Command{
			Type:           CommandShowPreNotice,
			Phase:          scheduler.phase,
			TimeUntilBreak: scheduler.timeUntilBreak,
			At:             now,
		})
		return
	}

	scheduler.emitLocked(Command{
		Type:           CommandTick,
		Phase:          scheduler.phase,
		TimeUntilBreak: scheduler.timeUntilBreak,
		At:             now,
	})
}

func (scheduler *Scheduler) advanceBreakLocked(now time.Time) {
	scheduler.breakCountdown -= scheduler.options.TickInterval
	if scheduler.breakCountdown > 0 {
		scheduler.emitLocked(Command{
			Type:           CommandTick,
			Phase:          scheduler.phase,
			BreakCountdown: scheduler.breakCountdown,
			At:             now,
		})
		return
	}

	scheduler.breakCountdown = 0
	scheduler.breakTicking = false
	scheduler.stopTickerIfIdleLocked()
	scheduler.emitLocked(Command{
		Type:           CommandBreakFinished,
		Phase:          scheduler.phase,
		BreakCountdown: 0,
		At:             now,
	})
}

func (scheduler *Scheduler) enterBreakLocked(now time.Time) {
	scheduler.phase = PhaseBreak
	scheduler.workTicking = false
	scheduler.breakCountdown = scheduler.config.BreakDuration
	scheduler.breakTicking = true
	scheduler.startTickerLocked()
	scheduler.emitLocked(Command{
		Type:           CommandShowBreak,
		Phase:          scheduler.phase,
		BreakCountdown: scheduler.breakCountdown,
		At:             now,
	})
}

// canRunWorkLocked is the single authority on whether the work
// countdown may tick.
func (scheduler *Scheduler) canRunWorkLocked() bool {
	return scheduler.config.Enabled &&
		!scheduler.systemInactive &&
		!scheduler.userIdle &&
		scheduler.phase == PhaseWorking
}

func (scheduler *Scheduler) startWorkIfAllowedLocked() bool {
	if !scheduler.canRunWorkLocked() {
		return false
	}
	scheduler.workTicking = true
	scheduler.startTickerLocked()
	return true
}

func (scheduler *Scheduler) resetWorkLocked() {
	scheduler.timeUntilBreak = scheduler.config.WorkInterval
	scheduler.preNoticeShown = false
}

func (scheduler *Scheduler) applyPendingConfigLocked() {
	if scheduler.pending == nil {
		return
	}
	scheduler.config = *scheduler.pending
	scheduler.pending = nil
}

func (scheduler *Scheduler) startTickerLocked() {
	if scheduler.tickerActive || scheduler.closed {
		return
	}
	scheduler.tickerActive = true
	scheduler.stopCh = make(chan struct{})
	go scheduler.run(scheduler.stopCh)
}

func (scheduler *Scheduler) stopTickerLocked() {
	if !scheduler.tickerActive {
		return
	}
	scheduler.tickerActive = false
	if scheduler.stopCh != nil {
		close(scheduler.stopCh)
		scheduler.stopCh = nil
	}
}

func (scheduler *Scheduler) stopTickerIfIdleLocked() {
	if scheduler.workTicking || scheduler.breakTicking {
		return
	}
	scheduler.stopTickerLocked()
}

func (scheduler *Scheduler) emitLocked(command Command) {
	subscribers := append([]chan Command(nil), scheduler.subscribers...)
	for _, ch := range subscribers {
		select {
		case ch <- command:
		default:
		}
	}
}
