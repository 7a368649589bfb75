package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnSettings    func()
	OnTogglePause func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	onBreak     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks. app may be nil
// when the platform has no system tray.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.refreshMenu()
	return manager
}

// Update sets the remaining time and phase flags.
func (manager *Manager) Update(remaining string, paused, onBreak bool) {
	manager.statusLabel = remaining
	manager.onBreak = onBreak
	if manager.paused != paused {
		manager.paused = paused
		if paused {
			manager.pauseItem.Label = "Resume"
		} else {
			manager.pauseItem.Label = "Pause"
		}
	}
	manager.refreshStatus()
}

// Status returns the status line shown in the menu.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// PauseLabel returns the label of the pause toggle.
func (manager *Manager) PauseLabel() string {
	return manager.pauseItem.Label
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.onBreak {
		status = fmt.Sprintf("on break, %s", status)
	}
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu("Pomodesk",
			manager.statusItem,
			fyne.NewMenuItem("Settings", func() {
				if manager.callbacks.OnSettings != nil {
					manager.callbacks.OnSettings()
				}
			}),
			manager.pauseItem,
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Quit", func() {
				if manager.callbacks.OnQuit != nil {
					manager.callbacks.OnQuit()
				}
			}),
		))
	}
}
