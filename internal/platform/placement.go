package platform

import (
	"errors"

	"pomodesk/internal/core/model"

	"fyne.io/fyne/v2"
)

// ErrPlacementUnsupported indicates the windowing system does not let the app place its window.
var ErrPlacementUnsupported = errors.New("window placement unsupported")

// Placer positions the native window behind a Fyne window.
type Placer interface {
	ScreenSize() (model.Size, error)
	Move(window fyne.Window, position model.WindowPosition) error
	KeepOnTop(window fyne.Window) error
}

// NewPlacer returns a platform-specific placer.
func NewPlacer() Placer {
	return newPlacer()
}

// ScreenSizeOrDefault asks the placer for the screen size and falls back to model.DefaultScreen.
func ScreenSizeOrDefault(placer Placer) model.Size {
	size, err := placer.ScreenSize()
	if err != nil || size.Width <= 0 || size.Height <= 0 {
		return model.DefaultScreen
	}
	return size
}
