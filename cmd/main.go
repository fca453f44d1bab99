package main

import (
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"respite/internal/core/idle"
	"respite/internal/core/scheduler"
	"respite/internal/core/sysevents"
	"respite/internal/logging"
	"respite/internal/platform"
	"respite/internal/storage"
	"respite/internal/ui/breakwin"
	"respite/internal/ui/notice"
	"respite/internal/ui/preferences"
	"respite/internal/ui/tray"
	"respite/resources"
)

const appName = "Respite"

func main() {
	logger := logging.New("main")

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Error("single instance", "err", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.respite.app")
	fyneApp.SetIcon(resources.MustIcon("icon_active.png"))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow("Respite")
	trayWindow.SetContent(widget.NewLabel("Respite is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("load settings, using defaults", "err", err)
	}

	sched := scheduler.New(settings.SchedulerConfig(), scheduler.Options{TickInterval: time.Second})

	monitor := idle.NewMonitor(platform.NewIdleProbe(), settings.IdleThreshold, 5*time.Second, idle.Callbacks{
		OnIdle:   sched.UserIdle,
		OnActive: sched.UserActive,
	})
	if settings.IdleEnabled {
		monitor.Start()
	}

	bridge := sysevents.NewBridge(sched)
	powerSource := platform.NewPowerSource()
	if signals, err := powerSource.Start(); err != nil {
		logger.Warn("power events unavailable", "err", err)
	} else {
		go bridge.Run(signals)
	}

	breakWindow := breakwin.New(fyneApp, breakwin.Config{
		Opacity:    217,
		Fullscreen: true,
		Message:    "Step away from the screen for a moment.",
	}, breakwin.Actions{
		OnExtend:  sched.AdjustBreakCountdown,
		OnDismiss: sched.RequestBreakEnd,
	})

	noticeWindow := notice.New(fyneApp, notice.Actions{
		OnSkip:     sched.RequestSkipBreak,
		OnPostpone: sched.RequestPostpone,
		OnBreakNow: sched.RequestBreakNow,
	})

	service := platform.NewService()
	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		previous := settings
		settings = updated

		if err := storage.SaveSettings(appName, settings); err != nil {
			logger.Warn("save settings", "err", err)
		}

		sched.UpdateConfig(settings.SchedulerConfig())
		monitor.UpdateThreshold(settings.IdleThreshold)
		if settings.IdleEnabled {
			monitor.Start()
		} else {
			monitor.Stop()
		}

		if settings.LaunchAtLogin != previous.LaunchAtLogin {
			applyAutostart(service, settings.LaunchAtLogin, logger.Warn)
		}
	})

	activeIcon := resources.MustIcon("icon_active.png")
	breakIcon := resources.MustIcon("icon_break.png")

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnBreakNow: func() {
			sched.RequestBreakNow()
		},
		OnSkipBreak: func() {
			sched.RequestSkipBreak()
		},
		OnPostpone: func(duration time.Duration) {
			sched.RequestPostpone(duration)
		},
		OnQuit: func() {
			sched.Close()
			monitor.Stop()
			powerSource.Stop()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(activeIcon)

	commands := sched.Subscribe(16)
	go func() {
		for command := range commands {
			handleCommand(command, sched, breakWindow, noticeWindow, trayManager, desktopApp, activeIcon, breakIcon)
		}
	}()

	sched.Start()
	logger.Info("started", "work_interval", settings.WorkInterval, "enabled", settings.Enabled)
	fyneApp.Run()
}

func handleCommand(
	command scheduler.Command,
	sched *scheduler.Scheduler,
	breakWindow *breakwin.Window,
	noticeWindow *notice.Window,
	trayManager *tray.Manager,
	desktopApp desktop.App,
	activeIcon, breakIcon fyne.Resource,
) {
	switch command.Type {
	case scheduler.CommandShowPreNotice:
		fyne.Do(func() {
			noticeWindow.Show(command.TimeUntilBreak)
			trayManager.SetNoticeShowing(true)
		})
	case scheduler.CommandShowBreak:
		fyne.Do(func() {
			noticeWindow.Hide()
			trayManager.SetNoticeShowing(false)
			trayManager.SetInBreak(true)
			breakWindow.Show(command.BreakCountdown)
			desktopApp.SetSystemTrayIcon(breakIcon)
		})
	case scheduler.CommandHideNotifications:
		fyne.Do(func() {
			noticeWindow.Hide()
			breakWindow.Hide()
			trayManager.SetNoticeShowing(false)
			trayManager.SetInBreak(false)
			desktopApp.SetSystemTrayIcon(activeIcon)
		})
	case scheduler.CommandBreakFinished:
		// The countdown owns no exit policy; the dismiss request does.
		sched.RequestBreakEnd()
	case scheduler.CommandTick:
		switch command.Phase {
		case scheduler.PhaseWorking, scheduler.PhasePreNotice:
			fyne.Do(func() {
				trayManager.SetStatus("next break in " + scheduler.FormatClock(command.TimeUntilBreak))
			})
			if command.Phase == scheduler.PhasePreNotice {
				noticeWindow.SetRemaining(command.TimeUntilBreak)
			}
		case scheduler.PhaseBreak:
			breakWindow.SetCountdown(command.BreakCountdown)
		}
	}
}

func applyAutostart(service platform.Service, enable bool, warn func(msg interface{}, args ...interface{})) {
	if !enable {
		if err := service.DisableAutostart(appName); err != nil {
			warn("disable autostart", "err", err)
		}
		return
	}
	execPath, err := os.Executable()
	if err != nil {
		warn("resolve executable for autostart", "err", err)
		return
	}
	if err := service.EnableAutostart(appName, execPath); err != nil {
		warn("enable autostart", "err", err)
	}
}
