// Package notice renders the transient pre-break warning window.
package notice

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"respite/internal/core/scheduler"
)

// Actions are invoked from the notice's buttons.
type Actions struct {
	OnSkip     func()
	OnPostpone func(extendBy time.Duration)
	OnBreakNow func()
}

// Window manages the pre-break notice UI: a small always-on-top panel
// with the remaining countdown and the three ways out.
type Window struct {
	window    fyne.Window
	countdown *widget.Label
	actions   Actions
	visible   bool
}

// New creates the notice window, hidden.
func New(app fyne.App, actions Actions) *Window {
	window := app.NewWindow("Break soon")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	notice := &Window{
		window:    window,
		countdown: widget.NewLabelWithStyle("--:--", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		actions:   actions,
	}

	heading := widget.NewLabelWithStyle("Time for a break soon", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	skipButton := widget.NewButton("Skip", func() {
		if notice.actions.OnSkip != nil {
			notice.actions.OnSkip()
		}
	})
	postponeButton := widget.NewButton("Postpone 5 min", func() {
		if notice.actions.OnPostpone != nil {
			notice.actions.OnPostpone(5 * time.Minute)
		}
	})
	breakNowButton := widget.NewButton("Break now", func() {
		if notice.actions.OnBreakNow != nil {
			notice.actions.OnBreakNow()
		}
	})

	window.SetContent(container.NewVBox(
		heading,
		notice.countdown,
		container.NewHBox(skipButton, postponeButton, breakNowButton),
	))
	window.Resize(fyne.NewSize(340, 140))
	window.SetCloseIntercept(func() {
		// Closing the notice is the same as skipping the break.
		if notice.actions.OnSkip != nil {
			notice.actions.OnSkip()
		}
	})

	return notice
}

// Show presents the notice with the remaining time until the break.
func (notice *Window) Show(remaining time.Duration) {
	notice.setRemainingUnsafe(remaining)
	notice.window.Show()
	notice.window.RequestFocus()
	notice.visible = true
}

// Hide retracts the notice.
func (notice *Window) Hide() {
	notice.window.Hide()
	notice.visible = false
}

// Visible reports whether the notice is currently shown.
func (notice *Window) Visible() bool {
	return notice.visible
}

// SetRemaining updates the countdown label.
func (notice *Window) SetRemaining(remaining time.Duration) {
	fyne.Do(func() {
		notice.setRemainingUnsafe(remaining)
	})
}

func (notice *Window) setRemainingUnsafe(remaining time.Duration) {
	notice.countdown.SetText("Break in " + scheduler.FormatClock(remaining))
}
