package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	glyphLine   = '·'
	glyphSmall  = '∙'
	glyphMedium = '•'
	glyphLarge  = '●'
)

type cell struct {
	color colorful.Color // composited over black
	glyph rune
}

// cellCanvas renders the field into terminal cells. Every cell covers
// cellW x cellH surface units; shapes blend their color into the cells they touch.
type cellCanvas struct {
	screen       tcell.Screen
	cellW, cellH float64
	cols, rows   int
	cells        []cell
}

func newCellCanvas(screen tcell.Screen, cellW, cellH float64) *cellCanvas {
	return &cellCanvas{screen: screen, cellW: cellW, cellH: cellH}
}

// surfaceSize converts a terminal size into surface units.
func (c *cellCanvas) surfaceSize(cols, rows int) (float64, float64) {
	return float64(cols) * c.cellW, float64(rows) * c.cellH
}

// toSurface returns the surface position of the center of a cell.
func (c *cellCanvas) toSurface(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * c.cellW, (float64(row) + 0.5) * c.cellH
}

func (c *cellCanvas) Clear() {
	cols, rows := c.screen.Size()
	if cols != c.cols || rows != c.rows {
		c.cols, c.rows = cols, rows
		c.cells = make([]cell, cols*rows)
		return
	}
	clear(c.cells)
}

func (c *cellCanvas) index(x, y float64) (int, bool) {
	col := int(math.Floor(x / c.cellW))
	row := int(math.Floor(y / c.cellH))
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, false
	}
	return row*c.cols + col, true
}

func (c *cellCanvas) blend(i int, clr color.NRGBA) {
	src := colorful.Color{R: float64(clr.R) / 255, G: float64(clr.G) / 255, B: float64(clr.B) / 255}
	c.cells[i].color = c.cells[i].color.BlendRgb(src, float64(clr.A)/255)
}

// StrokeLine samples the segment once per cell step and blends each cell once.
func (c *cellCanvas) StrokeLine(x0, y0, x1, y1, _ float64, clr color.NRGBA) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0)/c.cellW, math.Abs(y1-y0)/c.cellH)))
	last := -1
	for s := 0; s <= steps; s++ {
		t := 0.0
		if steps > 0 {
			t = float64(s) / float64(steps)
		}
		i, ok := c.index(x0+(x1-x0)*t, y0+(y1-y0)*t)
		if !ok || i == last {
			continue
		}
		last = i
		c.blend(i, clr)
		if c.cells[i].glyph == 0 {
			c.cells[i].glyph = glyphLine
		}
	}
}

func (c *cellCanvas) FillCircle(x, y, r float64, clr color.NRGBA) {
	i, ok := c.index(x, y)
	if !ok {
		return
	}
	c.blend(i, clr)
	c.cells[i].glyph = glyphFor(r, c.cells[i].glyph)
}

// glyphFor picks a particle glyph by radius, never shrinking one already drawn.
func glyphFor(r float64, current rune) rune {
	g := glyphSmall
	switch {
	case r >= 1.6:
		g = glyphLarge
	case r >= 0.9:
		g = glyphMedium
	}
	if rank(current) > rank(g) {
		return current
	}
	return g
}

func rank(g rune) int {
	switch g {
	case glyphLarge:
		return 3
	case glyphMedium:
		return 2
	case glyphSmall:
		return 1
	default:
		return 0
	}
}

// flush copies the cells to the screen. Show is left to the caller.
func (c *cellCanvas) flush() {
	blank := tcell.StyleDefault.Background(tcell.ColorBlack)
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			if cl.glyph == 0 {
				c.screen.SetContent(col, row, ' ', nil, blank)
				continue
			}
			r, g, b := cl.color.Clamped().RGB255()
			style := blank.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			c.screen.SetContent(col, row, cl.glyph, nil, style)
		}
	}
}
