package field

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// hsla converts hue (degrees), saturation, lightness and alpha (all 0-1) into a
// non-premultiplied color.
func hsla(h, s, l, a float64) color.NRGBA {
	r, g, b := colorful.Hsl(math.Mod(h, 360), s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(a)}
}

// withAlpha returns c with its alpha replaced by a (0-1).
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = alpha8(a)
	return c
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(a, 1)) * 255))
}
