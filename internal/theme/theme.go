package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes holds the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the colors of the drawing surface and window chrome.
type Theme struct {
	Name string

	// Surface
	Background color.RGBA // backdrop around the paper
	Paper      color.RGBA // also the eraser color
	Shadow     color.RGBA // paper drop shadow, alpha is the strength

	// Status bar
	StatusBar  color.RGBA
	StatusText color.RGBA
}

// Default returns the built in theme used when nothing else is configured.
func Default() *Theme {
	return &Theme{
		Name:       "Default",
		Background: color.RGBA{0x5b, 0x56, 0x4d, 0xff},
		Paper:      color.RGBA{0xff, 0xff, 0xff, 0xff},
		Shadow:     color.RGBA{0x00, 0x00, 0x00, 0x6e},
		StatusBar:  color.RGBA{0x3a, 0x36, 0x30, 0xff},
		StatusText: color.RGBA{0xee, 0xea, 0xe2, 0xff},
	}
}

// Fields lists the color keys in file order.
func Fields() []string {
	return []string{"Background", "Paper", "Shadow", "StatusBar", "StatusText"}
}
