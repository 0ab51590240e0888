package backend

import (
	"fmt"
	"image/color"
	"math"

	"git.sr.ht/~whereswaldon/tourchart/chart"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns the colors of the i-th series. Hues are spread by the
// golden angle so that neighboring series are easy to tell apart.
func Palette(i int) chart.Palette {
	hue := math.Mod(float64(i+1)*math.Phi*360, 360)
	return paletteFor(colorful.Hcl(hue, 0.5, 0.5))
}

// ParsePalette derives the palette of a series from a hex color such as
// "#3a7bd5".
func ParsePalette(hex string) (chart.Palette, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return chart.Palette{}, fmt.Errorf("failed parsing color %q: %w", hex, err)
	}
	return paletteFor(c), nil
}

// paletteFor keeps the hue of c and derives a darker line color and two
// lighter fill colors from it.
func paletteFor(c colorful.Color) chart.Palette {
	h, chroma, _ := c.Hcl()
	return chart.Palette{
		Line:   nrgba(colorful.Hcl(h, chroma, 0.45)),
		Dark:   nrgba(colorful.Hcl(h, chroma*0.6, 0.7)),
		Bright: nrgba(colorful.Hcl(h, chroma*0.15, 0.95)),
	}
}

func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
