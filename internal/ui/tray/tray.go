package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences func()
	OnBreakNow    func()
	OnSkipBreak   func()
	OnPostpone    func(time.Duration)
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app          desktop.App
	statusItem   *fyne.MenuItem
	breakNowItem *fyne.MenuItem
	skipItem     *fyne.MenuItem
	postponeItem *fyne.MenuItem
	callbacks    Callbacks
	inBreak      bool
	noticeShown  bool
	statusLabel  string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.breakNowItem = fyne.NewMenuItem("Take a break now", func() {
		if manager.callbacks.OnBreakNow != nil {
			manager.callbacks.OnBreakNow()
		}
	})

	manager.skipItem = fyne.NewMenuItem("Skip next break", func() {
		if manager.callbacks.OnSkipBreak != nil {
			manager.callbacks.OnSkipBreak()
		}
	})
	manager.skipItem.Disabled = true

	manager.postponeItem = fyne.NewMenuItem("Postpone break for...", nil)
	manager.postponeItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("5 minutes", manager.postponeHandler(5*time.Minute)),
		fyne.NewMenuItem("15 minutes", manager.postponeHandler(15*time.Minute)),
		fyne.NewMenuItem("30 minutes", manager.postponeHandler(30*time.Minute)),
		fyne.NewMenuItem("60 minutes", manager.postponeHandler(60*time.Minute)),
	)
	manager.postponeItem.Disabled = true

	app.SetSystemTrayMenu(manager.buildMenu())

	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetInBreak toggles break-related menu items.
func (manager *Manager) SetInBreak(inBreak bool) {
	manager.inBreak = inBreak
	manager.breakNowItem.Disabled = inBreak
	manager.refreshMenu()
}

// SetNoticeShowing enables the skip/postpone items while the pre-break
// notice is up; outside that window the scheduler ignores both anyway.
func (manager *Manager) SetNoticeShowing(showing bool) {
	manager.noticeShown = showing
	manager.skipItem.Disabled = !showing
	manager.postponeItem.Disabled = !showing
	manager.refreshMenu()
}

func (manager *Manager) postponeHandler(duration time.Duration) func() {
	return func() {
		if manager.callbacks.OnPostpone != nil {
			manager.callbacks.OnPostpone(duration)
		}
	}
}

func (manager *Manager) buildMenu() *fyne.Menu {
	return fyne.NewMenu("Respite",
		manager.statusItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		manager.breakNowItem,
		manager.skipItem,
		manager.postponeItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.buildMenu())
	}
}
