package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyne.io/fyne/v2"
)

type fakeDesktop struct {
	menus []*fyne.Menu
}

func (app *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func (app *fakeDesktop) SetSystemTrayIcon(fyne.Resource) {}

func (app *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

func TestUpdateStatusAndPauseLabel(t *testing.T) {
	manager := New(nil, Callbacks{})

	manager.Update("24:59", false, false)
	assert.Equal(t, "Status: 24:59", manager.Status())
	assert.Equal(t, "Pause", manager.PauseLabel())

	manager.Update("24:59", true, false)
	assert.Equal(t, "Status: 24:59 (paused)", manager.Status())
	assert.Equal(t, "Resume", manager.PauseLabel())

	manager.Update("04:00", false, true)
	assert.Equal(t, "Status: on break, 04:00", manager.Status())
	assert.Equal(t, "Pause", manager.PauseLabel())
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	app := &fakeDesktop{}
	var settings, pauses, quits int
	New(app, Callbacks{
		OnSettings:    func() { settings++ },
		OnTogglePause: func() { pauses++ },
		OnQuit:        func() { quits++ },
	})

	require.NotEmpty(t, app.menus)
	items := app.menus[len(app.menus)-1].Items
	require.Len(t, items, 5)
	items[1].Action()
	items[2].Action()
	items[4].Action()

	assert.Equal(t, 1, settings)
	assert.Equal(t, 1, pauses)
	assert.Equal(t, 1, quits)
}
