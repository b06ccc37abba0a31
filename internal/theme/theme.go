package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes holds the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the colours used to draw the extractor view.
type Theme struct {
	Name string

	// Canvas behind the scan, zoom and thumbnail panels.
	Background color.RGBA

	// Crosshair dashes alternate between the two colours.
	CrosshairPrimary   color.RGBA
	CrosshairSecondary color.RGBA

	// Corner markers and the edges joining them.
	Corner color.RGBA
	Edge   color.RGBA

	// Status bar along the bottom of the window.
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Transient messages such as "wrote ...".
	MessageBackground color.RGBA
	MessageText       color.RGBA
}

// Default returns the built-in theme: grey canvas, red/black crosshair and
// blue corners.
func Default() *Theme {
	return &Theme{
		Name:               "Default",
		Background:         color.RGBA{100, 100, 100, 255},
		CrosshairPrimary:   color.RGBA{255, 0, 0, 255},
		CrosshairSecondary: color.RGBA{0, 0, 0, 255},
		Corner:             color.RGBA{0, 0, 255, 255},
		Edge:               color.RGBA{0, 0, 255, 255},
		StatusBackground:   color.RGBA{220, 220, 220, 255},
		StatusText:         color.RGBA{0, 0, 0, 255},
		MessageBackground:  color.RGBA{255, 255, 255, 230},
		MessageText:        color.RGBA{0, 0, 0, 255},
	}
}
