package preferences

import (
	"errors"
	"image/color"
	"log"

	"pomodesk/internal/core/model"
	"pomodesk/internal/platform"
	"pomodesk/internal/ui/palette"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const swatchSize = 24

// Window handles the settings UI.
type Window struct {
	window   fyne.Window
	placer   platform.Placer
	config   model.TimerConfig
	onSave   func(model.TimerConfig)
	total    *widget.Entry
	trigger  *widget.Entry
	longDur  *widget.Entry
	shortDur *widget.Entry
	swatches map[string]*canvas.Rectangle
	colors   map[string]*string
}

// New creates a settings window. onSave receives validated settings.
// placer keeps the window above the always-on-top clock; it may be nil.
func New(app fyne.App, placer platform.Placer, config model.TimerConfig, onSave func(model.TimerConfig)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:   window,
		placer:   placer,
		config:   config,
		onSave:   onSave,
		total:    widget.NewEntry(),
		trigger:  widget.NewEntry(),
		longDur:  widget.NewEntry(),
		shortDur: widget.NewEntry(),
		swatches: map[string]*canvas.Rectangle{},
	}
	prefs.bindColors()

	form := container.NewVBox(
		widget.NewLabel("Pomodoro Duration (min):"), prefs.total,
		widget.NewLabel("Break Trigger Time (min):"), prefs.trigger,
		widget.NewLabel("Long Break Duration (min):"), prefs.longDur,
		widget.NewLabel("Short Break Duration (min):"), prefs.shortDur,
		prefs.colorRow("normalBg", "Choose Normal BG Color"),
		prefs.colorRow("breakBg", "Choose Break BG Color"),
		prefs.colorRow("normalFg", "Choose Normal Text Color"),
		prefs.colorRow("breakFg", "Choose Break Text Color"),
	)

	saveButton := widget.NewButton("Save and Apply", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(300, 430))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(config)
	return prefs
}

// Show displays the window filled with config.
func (prefs *Window) Show(config model.TimerConfig) {
	prefs.UpdateSettings(config)
	prefs.window.Show()
	prefs.raise()
	prefs.window.RequestFocus()
}

func (prefs *Window) raise() {
	if prefs.placer == nil {
		return
	}
	err := prefs.placer.KeepOnTop(prefs.window)
	if err != nil && !errors.Is(err, platform.ErrPlacementUnsupported) {
		log.Printf("preferences: keep on top: %v", err)
	}
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(config model.TimerConfig) {
	prefs.config = config
	values := ValuesFrom(config)
	prefs.total.SetText(values.TotalMinutes)
	prefs.trigger.SetText(values.BreakTrigger)
	prefs.longDur.SetText(values.LongBreakMinutes)
	prefs.shortDur.SetText(values.ShortBreakMinutes)
	for key := range prefs.swatches {
		prefs.refreshSwatch(key)
	}
}

// Config returns the settings the window was last filled with or saved.
func (prefs *Window) Config() model.TimerConfig {
	return prefs.config
}

// bindColors maps color keys to the config fields they edit.
func (prefs *Window) bindColors() {
	prefs.colors = map[string]*string{
		"normalBg": &prefs.config.Normal.Background,
		"breakBg":  &prefs.config.Break.Background,
		"normalFg": &prefs.config.Normal.Foreground,
		"breakFg":  &prefs.config.Break.Foreground,
	}
}

func (prefs *Window) colorRow(key, label string) fyne.CanvasObject {
	swatch := canvas.NewRectangle(color.Transparent)
	swatch.SetMinSize(fyne.NewSize(swatchSize, swatchSize))
	swatch.StrokeWidth = 1
	swatch.StrokeColor = color.Gray{Y: 0x80}
	prefs.swatches[key] = swatch

	button := widget.NewButton(label, func() {
		prefs.pickColor(key, label)
	})
	return container.NewBorder(nil, nil, nil, swatch, button)
}

func (prefs *Window) pickColor(key, title string) {
	picker := dialog.NewColorPicker(title, "", func(picked color.Color) {
		prefs.setColor(key, palette.Hex(picked))
	}, prefs.window)
	picker.Advanced = true
	if current, err := palette.Parse(*prefs.colors[key]); err == nil {
		picker.SetColor(current)
	}
	picker.Show()
}

func (prefs *Window) setColor(key, value string) {
	*prefs.colors[key] = value
	prefs.refreshSwatch(key)
}

func (prefs *Window) refreshSwatch(key string) {
	swatch, ok := prefs.swatches[key]
	if !ok {
		return
	}
	swatch.FillColor = palette.ParseOr(*prefs.colors[key], color.Transparent)
	swatch.Refresh()
}

func (prefs *Window) handleSave() {
	values := FormValues{
		TotalMinutes:      prefs.total.Text,
		BreakTrigger:      prefs.trigger.Text,
		LongBreakMinutes:  prefs.longDur.Text,
		ShortBreakMinutes: prefs.shortDur.Text,
	}
	updated, err := values.Apply(prefs.config)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	prefs.config = updated
	if prefs.onSave != nil {
		prefs.onSave(updated)
	}
	prefs.window.Hide()
}
