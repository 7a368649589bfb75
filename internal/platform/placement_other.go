//go:build !linux && !windows

package platform

import (
	"pomodesk/internal/core/model"

	"fyne.io/fyne/v2"
)

type unsupportedPlacer struct{}

func newPlacer() Placer {
	return unsupportedPlacer{}
}

func (unsupportedPlacer) ScreenSize() (model.Size, error) {
	return model.Size{}, ErrPlacementUnsupported
}

func (unsupportedPlacer) Move(fyne.Window, model.WindowPosition) error {
	return ErrPlacementUnsupported
}

func (unsupportedPlacer) KeepOnTop(fyne.Window) error {
	return ErrPlacementUnsupported
}
