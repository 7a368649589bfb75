package model

// Window dimensions of the clock widget.
const (
	WindowWidth  = 200
	WindowHeight = 100

	// SnapThreshold is the distance in pixels at which a dragged window sticks to a screen edge.
	SnapThreshold = 20
)

// DefaultScreen is assumed when the platform cannot report the screen size.
var DefaultScreen = Size{Width: 1920, Height: 1080}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// WindowPosition is the top-left corner of the window on screen.
type WindowPosition struct {
	X int
	Y int
}

// Centered returns the position that centers a window of the given size on screen.
func Centered(screen, window Size) WindowPosition {
	return WindowPosition{
		X: (screen.Width - window.Width) / 2,
		Y: (screen.Height - window.Height) / 2,
	}
}

// Snap moves the position flush against any screen edge closer than threshold.
// Right and bottom edges win over left and top when both are in range.
func Snap(position WindowPosition, window, screen Size, threshold int) WindowPosition {
	if abs(position.X) < threshold {
		position.X = 0
	}
	if abs(position.X+window.Width-screen.Width) < threshold {
		position.X = screen.Width - window.Width
	}
	if abs(position.Y) < threshold {
		position.Y = 0
	}
	if abs(position.Y+window.Height-screen.Height) < threshold {
		position.Y = screen.Height - window.Height
	}
	return position
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
