package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	onCancel      func()
	workInterval  *widget.Entry
	preNoticeLead *widget.Entry
	breakDuration *widget.Entry
	idleThreshold *widget.Entry
	enabled       *widget.Check
	idleCheck     *widget.Check
	launchAtLogin *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Respite Settings")

	workInterval := widget.NewEntry()
	preNoticeLead := widget.NewEntry()
	breakDuration := widget.NewEntry()
	idleThreshold := widget.NewEntry()

	workInterval.SetText(fmt.Sprintf("%d", int(settings.WorkInterval.Minutes())))
	preNoticeLead.SetText(fmt.Sprintf("%d", int(settings.PreNoticeLead.Seconds())))
	breakDuration.SetText(fmt.Sprintf("%d", int(settings.BreakDuration.Minutes())))
	idleThreshold.SetText(fmt.Sprintf("%d", int(settings.IdleThreshold.Minutes())))

	enabled := widget.NewCheck("Enable break reminders", nil)
	enabled.SetChecked(settings.Enabled)

	idleCheck := widget.NewCheck("Restart the countdown after inactivity", nil)
	idleCheck.SetChecked(settings.IdleEnabled)

	launchAtLogin := widget.NewCheck("Launch at login", nil)
	launchAtLogin.SetChecked(settings.LaunchAtLogin)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Schedule", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Break every"), workInterval, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Warn before break"), preNoticeLead, widget.NewLabel("sec (0 = off)")),
		container.NewHBox(widget.NewLabel("Break length"), breakDuration, widget.NewLabel("min")),
		enabled,
		widget.NewLabelWithStyle("Inactivity", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		idleCheck,
		container.NewHBox(widget.NewLabel("Consider me away after"), idleThreshold, widget.NewLabel("min")),
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		launchAtLogin,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 420))

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		workInterval:  workInterval,
		preNoticeLead: preNoticeLead,
		breakDuration: breakDuration,
		idleThreshold: idleThreshold,
		enabled:       enabled,
		idleCheck:     idleCheck,
		launchAtLogin: launchAtLogin,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workInterval.SetText(fmt.Sprintf("%d", int(settings.WorkInterval.Minutes())))
	prefs.preNoticeLead.SetText(fmt.Sprintf("%d", int(settings.PreNoticeLead.Seconds())))
	prefs.breakDuration.SetText(fmt.Sprintf("%d", int(settings.BreakDuration.Minutes())))
	prefs.idleThreshold.SetText(fmt.Sprintf("%d", int(settings.IdleThreshold.Minutes())))
	prefs.enabled.SetChecked(settings.Enabled)
	prefs.idleCheck.SetChecked(settings.IdleEnabled)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workInterval.Text); ok {
		settings.WorkInterval = time.Duration(minutes) * time.Minute
	}
	if seconds, ok := parseNonNegativeInt(prefs.preNoticeLead.Text); ok {
		settings.PreNoticeLead = time.Duration(seconds) * time.Second
	}
	if minutes, ok := parsePositiveInt(prefs.breakDuration.Text); ok {
		settings.BreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.idleThreshold.Text); ok {
		settings.IdleThreshold = time.Duration(minutes) * time.Minute
	}

	settings.Enabled = prefs.enabled.Checked
	settings.IdleEnabled = prefs.idleCheck.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
