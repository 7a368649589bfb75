package clock

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const faceTextSize = 28

// Face is the timer label. It turns mouse gestures into callbacks.
type Face struct {
	widget.BaseWidget

	background *canvas.Rectangle
	label      *canvas.Text

	OnTapped          func()
	OnDoubleTapped    func()
	OnTappedSecondary func()
	OnDragged         func(fyne.Position, fyne.Delta)
	OnDragEnd         func()
}

// NewFace creates a face showing text in the given colors.
func NewFace(text string, background, foreground color.Color) *Face {
	label := canvas.NewText(text, foreground)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = faceTextSize

	face := &Face{
		background: canvas.NewRectangle(background),
		label:      label,
	}
	face.ExtendBaseWidget(face)
	return face
}

// CreateRenderer implements fyne.Widget.
func (face *Face) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(face.background, container.NewCenter(face.label)))
}

// SetText replaces the label text.
func (face *Face) SetText(text string) {
	if face.label.Text == text {
		return
	}
	face.label.Text = text
	face.label.Refresh()
}

// Text returns the label text.
func (face *Face) Text() string {
	return face.label.Text
}

// SetColors repaints background and text.
func (face *Face) SetColors(background, foreground color.Color) {
	face.background.FillColor = background
	face.label.Color = foreground
	face.background.Refresh()
	face.label.Refresh()
}

// Colors returns the current background and text colors.
func (face *Face) Colors() (color.Color, color.Color) {
	return face.background.FillColor, face.label.Color
}

// Tapped implements fyne.Tappable.
func (face *Face) Tapped(*fyne.PointEvent) {
	if face.OnTapped != nil {
		face.OnTapped()
	}
}

// DoubleTapped implements fyne.DoubleTappable.
func (face *Face) DoubleTapped(*fyne.PointEvent) {
	if face.OnDoubleTapped != nil {
		face.OnDoubleTapped()
	}
}

// TappedSecondary implements fyne.SecondaryTappable.
func (face *Face) TappedSecondary(*fyne.PointEvent) {
	if face.OnTappedSecondary != nil {
		face.OnTappedSecondary()
	}
}

// Dragged implements fyne.Draggable.
func (face *Face) Dragged(event *fyne.DragEvent) {
	if face.OnDragged != nil {
		face.OnDragged(event.Position, event.Dragged)
	}
}

// DragEnd implements fyne.Draggable.
func (face *Face) DragEnd() {
	if face.OnDragEnd != nil {
		face.OnDragEnd()
	}
}

// FormatRemaining renders MM:SS, wrapped as "|| (MM:SS)" while paused.
func FormatRemaining(remaining time.Duration, paused bool) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	text := fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
	if paused {
		return "|| (" + text + ")"
	}
	return text
}
