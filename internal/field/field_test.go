package field

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
)

type line struct {
	x0, y0, x1, y1, width float64
	c                     color.NRGBA
}

type circle struct {
	x, y, r float64
	c       color.NRGBA
}

// recorder is a Canvas that remembers every call.
type recorder struct {
	clears  int
	lines   []line
	circles []circle
}

func (r *recorder) Clear() {
	r.clears++
	r.lines = r.lines[:0]
	r.circles = r.circles[:0]
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, width, c})
}

func (r *recorder) FillCircle(x, y, rad float64, c color.NRGBA) {
	r.circles = append(r.circles, circle{x, y, rad, c})
}

func newTestSim(t *testing.T, width, height float64) (*Simulator, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := New(DefaultParams(), rand.New(rand.NewPCG(1, 2)))
	if !s.Init(rec, width, height) {
		t.Fatal("Init returned false with a canvas")
	}
	return s, rec
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
