package clock

import (
	"errors"
	"image/color"
	"log"
	"math"

	"pomodesk/internal/core/model"
	"pomodesk/internal/core/timekeeper"
	"pomodesk/internal/platform"
	"pomodesk/internal/ui/palette"

	"fyne.io/fyne/v2"
)

var (
	fallbackBackground = color.NRGBA{A: 0xff}
	fallbackForeground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Callbacks defines gesture handlers.
type Callbacks struct {
	OnTogglePause func()
	OnSettings    func()
	OnMoved       func(model.WindowPosition)
	OnClose       func()
}

// Window is the borderless always-on-top timer window.
type Window struct {
	window    fyne.Window
	face      *Face
	placer    platform.Placer
	screen    model.Size
	position  model.WindowPosition
	dragging  bool
	grab      fyne.Position
	scale     func() float32
	callbacks Callbacks
	warned    bool
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the timer window at position. It is shown by Show.
func New(app fyne.App, placer platform.Placer, screen model.Size, position model.WindowPosition, theme model.Theme) *Window {
	var window fyne.Window
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	} else {
		window = app.NewWindow("Pomodesk")
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background, foreground := themeColors(theme)
	face := NewFace(FormatRemaining(0, false), background, foreground)
	window.SetContent(face)
	window.Resize(fyne.NewSize(model.WindowWidth, model.WindowHeight))
	window.SetFixedSize(true)

	clock := &Window{
		window:   window,
		face:     face,
		placer:   placer,
		screen:   screen,
		position: position,
	}
	clock.scale = func() float32 { return window.Canvas().Scale() }
	face.OnTapped = clock.handleTap
	face.OnDoubleTapped = clock.handleDoubleTap
	face.OnTappedSecondary = clock.handleSecondaryTap
	face.OnDragged = clock.handleDrag
	face.OnDragEnd = clock.handleDragEnd
	return clock
}

// SetCallbacks installs gesture handlers.
func (clock *Window) SetCallbacks(callbacks Callbacks) {
	clock.callbacks = callbacks
}

// Show displays the window, places it and raises it above other windows.
func (clock *Window) Show() {
	clock.window.Show()
	if err := clock.placer.KeepOnTop(clock.window); err != nil {
		clock.warn("keep on top", err)
	}
	if err := clock.placer.Move(clock.window, clock.position); err != nil {
		clock.warn("place window", err)
		clock.window.CenterOnScreen()
	}
}

// Position returns the last known window position.
func (clock *Window) Position() model.WindowPosition {
	return clock.position
}

// Face returns the timer label widget.
func (clock *Window) Face() *Face {
	return clock.face
}

// Render shows a TimeKeeper update. Must run on the Fyne thread.
func (clock *Window) Render(event timekeeper.Event) {
	clock.face.SetText(FormatRemaining(event.Remaining, event.Paused))
	background, foreground := themeColors(event.Theme)
	clock.face.SetColors(background, foreground)
}

func (clock *Window) handleTap() {
	if clock.callbacks.OnTogglePause != nil {
		clock.callbacks.OnTogglePause()
	}
}

func (clock *Window) handleDoubleTap() {
	if clock.callbacks.OnClose != nil {
		clock.callbacks.OnClose()
	}
}

func (clock *Window) handleSecondaryTap() {
	if clock.callbacks.OnSettings != nil {
		clock.callbacks.OnSettings()
	}
}

// handleDrag keeps the grabbed point under the pointer. Drag positions are
// relative to the window, which moves with the drag, so the offset from the
// grab point is the distance still to travel, in canvas units.
func (clock *Window) handleDrag(position fyne.Position, delta fyne.Delta) {
	if !clock.dragging {
		clock.dragging = true
		clock.grab = position.Subtract(delta)
	}

	scale := clock.scale()
	if scale <= 0 {
		scale = 1
	}
	next := model.WindowPosition{
		X: clock.position.X + int(math.Round(float64((position.X-clock.grab.X)*scale))),
		Y: clock.position.Y + int(math.Round(float64((position.Y-clock.grab.Y)*scale))),
	}
	next = model.Snap(next, model.Size{Width: model.WindowWidth, Height: model.WindowHeight}, clock.screen, model.SnapThreshold)
	if next == clock.position {
		return
	}
	clock.position = next
	if err := clock.placer.Move(clock.window, next); err != nil {
		clock.warn("move window", err)
	}
}

func (clock *Window) handleDragEnd() {
	clock.dragging = false
	if clock.callbacks.OnMoved != nil {
		clock.callbacks.OnMoved(clock.position)
	}
}

// warn logs the first placement failure only; later ones repeat the same cause.
func (clock *Window) warn(action string, err error) {
	if clock.warned {
		return
	}
	clock.warned = true
	if errors.Is(err, platform.ErrPlacementUnsupported) {
		log.Printf("clock: %s: %v, leaving placement to the window manager", action, err)
		return
	}
	log.Printf("clock: %s: %v", action, err)
}

func themeColors(theme model.Theme) (color.Color, color.Color) {
	return palette.ParseOr(theme.Background, fallbackBackground), palette.ParseOr(theme.Foreground, fallbackForeground)
}
