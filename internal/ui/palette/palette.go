// Package palette converts between persisted color strings and Fyne colors.
//
// A color string is either a CSS/SVG color name ("black", "dark orange") or a
// hex triplet ("#f80", "#ff8800"). Other strings are kept as typed but render
// with the caller's fallback.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrUnknownColor indicates a string that is neither a color name nor a hex triplet.
var ErrUnknownColor = errors.New("unknown color")

// Parse resolves a color string.
func Parse(value string) (color.NRGBA, error) {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "#") {
		parsed, err := colorful.Hex(trimmed)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, value)
		}
		r, g, b := parsed.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	name := strings.ToLower(strings.ReplaceAll(trimmed, " ", ""))
	if named, ok := colornames.Map[name]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: 0xff}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, value)
}

// ParseOr resolves a color string and returns fallback when it is unknown.
func ParseOr(value string, fallback color.Color) color.Color {
	parsed, err := Parse(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Hex formats a color as #rrggbb, dropping alpha.
func Hex(value color.Color) string {
	r, g, b, a := value.RGBA()
	if a == 0 {
		return "#000000"
	}
	// undo alpha premultiplication
	converted := colorful.Color{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
	}
	return converted.Clamped().Hex()
}
