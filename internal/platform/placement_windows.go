//go:build windows

package platform

import (
	"fmt"
	"syscall"

	"pomodesk/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

const (
	smCxScreen    = 0
	smCyScreen    = 1
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
	hwndTopmost   = ^uintptr(0)
)

var (
	user32DLL            = syscall.NewLazyDLL("user32.dll")
	procSetWindowPos     = user32DLL.NewProc("SetWindowPos")
	procGetSystemMetrics = user32DLL.NewProc("GetSystemMetrics")
)

type win32Placer struct{}

func newPlacer() Placer {
	return &win32Placer{}
}

func (placer *win32Placer) ScreenSize() (model.Size, error) {
	width, _, _ := procGetSystemMetrics.Call(smCxScreen)
	height, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if width == 0 || height == 0 {
		return model.Size{}, fmt.Errorf("get system metrics: screen size unavailable")
	}
	return model.Size{Width: int(width), Height: int(height)}, nil
}

func (placer *win32Placer) Move(window fyne.Window, position model.WindowPosition) error {
	hwnd := windowHandle(window)
	if hwnd == 0 {
		return ErrPlacementUnsupported
	}
	result, _, err := procSetWindowPos.Call(hwnd, 0, intToUintptr(position.X), intToUintptr(position.Y), 0, 0, swpNoSize|swpNoZOrder|swpNoActivate)
	if result == 0 {
		return fmt.Errorf("set window pos: %w", err)
	}
	return nil
}

func (placer *win32Placer) KeepOnTop(window fyne.Window) error {
	hwnd := windowHandle(window)
	if hwnd == 0 {
		return ErrPlacementUnsupported
	}
	result, _, err := procSetWindowPos.Call(hwnd, hwndTopmost, 0, 0, 0, 0, swpNoSize|swpNoMove|swpNoActivate)
	if result == 0 {
		return fmt.Errorf("set topmost: %w", err)
	}
	return nil
}

func windowHandle(window fyne.Window) uintptr {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return 0
	}

	var hwnd uintptr
	nativeWindow.RunNative(func(context any) {
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		}
	})
	return hwnd
}

func intToUintptr(value int) uintptr {
	return uintptr(uint32(int32(value)))
}
