// Package breakwin renders the fullscreen break window.
package breakwin

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"respite/internal/core/scheduler"
)

// Config defines break window visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
	Message    string
}

// Actions are invoked from the break window's buttons. The window
// never mutates scheduling state itself.
type Actions struct {
	OnExtend  func(delta time.Duration)
	OnDismiss func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window manages the break UI.
type Window struct {
	app           fyne.App
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	messageLabel  *canvas.Text
	timerLabel    *canvas.Text
	extendButton  *widget.Button
	dismissButton *widget.Button
	actions       Actions
	visible       bool
}

// New creates the break window, hidden.
func New(app fyne.App, config Config, actions Actions) *Window {
	window := app.NewWindow("Respite")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity})

	titleLabel := canvas.NewText("Respite", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 28

	messageLabel := canvas.NewText(config.Message, color.NRGBA{R: 220, G: 220, B: 220, A: 255})
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextSize = 16

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true}
	timerLabel.TextSize = 48

	breakWindow := &Window{
		app:          app,
		window:       window,
		config:       config,
		background:   background,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
		timerLabel:   timerLabel,
		actions:      actions,
	}

	extendButton := widget.NewButton("+1 min", func() {
		if breakWindow.actions.OnExtend != nil {
			breakWindow.actions.OnExtend(time.Minute)
		}
	})
	dismissButton := widget.NewButton("Back to work", func() {
		if breakWindow.actions.OnDismiss != nil {
			breakWindow.actions.OnDismiss()
		}
	})
	breakWindow.extendButton = extendButton
	breakWindow.dismissButton = dismissButton

	buttons := container.NewHBox(extendButton, dismissButton)
	content := container.NewCenter(container.NewVBox(
		titleLabel,
		messageLabel,
		timerLabel,
		container.NewCenter(buttons),
	))
	window.SetContent(container.NewMax(background, content))

	return breakWindow
}

// Show presents the break window with the initial countdown value.
func (breakWindow *Window) Show(countdown time.Duration) {
	breakWindow.setCountdownUnsafe(countdown)
	breakWindow.applyWindowMode()
	breakWindow.window.Show()
	breakWindow.window.RequestFocus()
	breakWindow.visible = true
}

// Hide closes the break window.
func (breakWindow *Window) Hide() {
	if breakWindow.config.Fullscreen {
		breakWindow.window.SetFullScreen(false)
	}
	breakWindow.window.Hide()
	breakWindow.visible = false
}

// Visible reports whether the window is currently shown.
func (breakWindow *Window) Visible() bool {
	return breakWindow.visible
}

// SetCountdown updates the countdown label.
func (breakWindow *Window) SetCountdown(countdown time.Duration) {
	fyne.Do(func() {
		breakWindow.setCountdownUnsafe(countdown)
	})
}

// UpdateConfig updates break window visuals.
func (breakWindow *Window) UpdateConfig(config Config) {
	breakWindow.config = config
	breakWindow.background.FillColor = color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity}
	breakWindow.messageLabel.Text = config.Message
	breakWindow.applyWindowMode()
	canvas.Refresh(breakWindow.background)
	breakWindow.messageLabel.Refresh()
}

func (breakWindow *Window) setCountdownUnsafe(countdown time.Duration) {
	breakWindow.timerLabel.Text = scheduler.FormatClock(countdown)
	breakWindow.timerLabel.Refresh()
}

func (breakWindow *Window) applyWindowMode() {
	if breakWindow.config.Fullscreen {
		breakWindow.window.SetFullScreen(true)
		return
	}
	breakWindow.window.SetFullScreen(false)
	breakWindow.window.Resize(fyne.NewSize(520, 340))
	breakWindow.window.CenterOnScreen()
}
