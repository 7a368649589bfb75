package main

import (
	"log"
	"path/filepath"
	"time"

	"pomodesk/internal/core/model"
	"pomodesk/internal/core/timekeeper"
	"pomodesk/internal/platform"
	"pomodesk/internal/sound"
	"pomodesk/internal/storage"
	"pomodesk/internal/ui/clock"
	"pomodesk/internal/ui/preferences"
	"pomodesk/internal/ui/tray"
	"pomodesk/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Pomodesk"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.pomodesk.app")
	fyneApp.SetIcon(resources.MustLogo("icon.png"))

	placer := platform.NewPlacer()
	screen := platform.ScreenSizeOrDefault(placer)

	settingsPath, err := storage.DefaultPath(appName)
	if err != nil {
		log.Printf("settings: %v, using working directory", err)
		settingsPath = "settings.yaml"
	}
	store := storage.NewSettingsStore(settingsPath, screen)
	config, position := store.Load()

	player := sound.NewPlayer(config.CueFile, installCue(filepath.Dir(settingsPath)))

	keeper := timekeeper.New(config, timekeeper.Config{TickInterval: time.Second})
	keeper.SetCuePlayer(player)

	clockWindow := clock.New(fyneApp, placer, screen, position, keeper.Theme())

	persist := func() {
		if err := store.Save(keeper.Config(), clockWindow.Position()); err != nil {
			log.Printf("settings: save failed: %v", err)
		}
	}

	prefsWindow := preferences.New(fyneApp, placer, config, func(updated model.TimerConfig) {
		keeper.ApplyConfig(updated)
		player.SetPath(updated.CueFile)
		persist()
	})

	quit := func() {
		persist()
		keeper.Stop()
		fyneApp.Quit()
	}

	clockWindow.SetCallbacks(clock.Callbacks{
		OnTogglePause: keeper.TogglePause,
		OnSettings: func() {
			prefsWindow.Show(keeper.Config())
		},
		OnMoved: func(model.WindowPosition) {
			persist()
		},
		OnClose: quit,
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnSettings: func() {
				prefsWindow.Show(keeper.Config())
			},
			OnTogglePause: keeper.TogglePause,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustLogo("icon.png"))
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	events := keeper.Subscribe(8)
	go func() {
		for event := range events {
			fyne.Do(func() {
				clockWindow.Render(event)
				if trayManager != nil {
					trayManager.Update(clock.FormatRemaining(event.Remaining, false), event.Paused, event.OnBreak)
				}
			})
		}
	}()

	clockWindow.Show()
	keeper.Start()
	fyneApp.Run()
}

// installCue unpacks the bundled cue next to the settings file.
func installCue(dir string) string {
	cue, err := resources.Sound("cue.wav")
	if err != nil {
		log.Printf("sound: %v", err)
		return ""
	}
	path, err := sound.InstallDefault(dir, cue.Content())
	if err != nil {
		log.Printf("sound: %v", err)
		return ""
	}
	return path
}
