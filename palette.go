package chartsense

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultPalette is cycled by series index when a series has no color.
var DefaultPalette = []string{
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
	"#9c755f",
	"#bab0ac",
}

// PaletteColor returns the palette entry for index i, cycling.
func PaletteColor(i int) string {
	n := len(DefaultPalette)
	return DefaultPalette[((i%n)+n)%n]
}

// ParseColor parses a hex color. Invalid input yields opaque mid gray so a
// bad configuration never breaks drawing.
func ParseColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Dim blends hex toward background by amount (0..1) in Lab space. Hosts use
// it to render HighlightDimmed elements.
func Dim(hex, background string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, err := colorful.Hex(background)
	if err != nil {
		return hex
	}
	return c.BlendLab(bg, clamp01(amount)).Clamped().Hex()
}

// Lighten raises the lightness of hex by amount (0..1) in HCL space. Hosts use
// it to render HighlightHighlighted elements.
func Lighten(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, cc, l := c.Hcl()
	return colorful.Hcl(h, cc, l+(1-l)*clamp01(amount)).Clamped().Hex()
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
