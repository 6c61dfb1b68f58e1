package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// screenCanvas adapts the ebiten screen image to field.Canvas. The target is
// set at the start of every Draw.
type screenCanvas struct {
	target     *ebiten.Image
	background color.Color
}

func (c *screenCanvas) Clear() {
	if c.target == nil {
		return
	}
	c.target.Fill(c.background)
}

func (c *screenCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if c.target == nil {
		return
	}
	vector.StrokeLine(c.target, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

func (c *screenCanvas) FillCircle(x, y, r float64, clr color.NRGBA) {
	if c.target == nil {
		return
	}
	vector.DrawFilledCircle(c.target, float32(x), float32(y), float32(r), clr, true)
}
