//go:build linux

package platform

import (
	"fmt"
	"sync"

	"pomodesk/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

type x11Placer struct {
	once sync.Once
	conn *xgbutil.XUtil
	err  error
}

func newPlacer() Placer {
	return &x11Placer{}
}

func (placer *x11Placer) connect() (*xgbutil.XUtil, error) {
	placer.once.Do(func() {
		conn, err := xgbutil.NewConn()
		if err != nil {
			placer.err = fmt.Errorf("connect to X server: %w", err)
			return
		}
		placer.conn = conn
	})
	return placer.conn, placer.err
}

func (placer *x11Placer) ScreenSize() (model.Size, error) {
	conn, err := placer.connect()
	if err != nil {
		return model.Size{}, err
	}
	screen := conn.Screen()
	return model.Size{
		Width:  int(screen.WidthInPixels),
		Height: int(screen.HeightInPixels),
	}, nil
}

func (placer *x11Placer) Move(window fyne.Window, position model.WindowPosition) error {
	conn, id, err := placer.resolve(window)
	if err != nil {
		return err
	}
	if err := ewmh.MoveWindow(conn, id, position.X, position.Y); err != nil {
		// Window managers without _NET_MOVERESIZE_WINDOW still honour a plain configure request.
		xwindow.New(conn, id).Move(position.X, position.Y)
	}
	return nil
}

func (placer *x11Placer) KeepOnTop(window fyne.Window) error {
	conn, id, err := placer.resolve(window)
	if err != nil {
		return err
	}
	if err := ewmh.WmStateReq(conn, id, ewmh.StateAdd, "_NET_WM_STATE_ABOVE"); err != nil {
		return fmt.Errorf("request always on top: %w", err)
	}
	return nil
}

func (placer *x11Placer) resolve(window fyne.Window) (*xgbutil.XUtil, xproto.Window, error) {
	conn, err := placer.connect()
	if err != nil {
		return nil, 0, err
	}
	handle := x11Handle(window)
	if handle == 0 {
		return nil, 0, ErrPlacementUnsupported
	}
	return conn, xproto.Window(handle), nil
}

func x11Handle(window fyne.Window) uintptr {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return 0
	}

	var handle uintptr
	nativeWindow.RunNative(func(context any) {
		switch value := context.(type) {
		case driver.X11WindowContext:
			handle = value.WindowHandle
		case *driver.X11WindowContext:
			handle = value.WindowHandle
		}
	})
	return handle
}
