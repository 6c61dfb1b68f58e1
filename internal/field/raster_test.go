package field

import (
	"image/color"
	"testing"
)

func TestRasterFillCircle(t *testing.T) {
	r := NewRaster(40, 30, color.Black)
	r.FillCircle(20, 15, 5, color.NRGBA{R: 255, A: 255})

	img := r.Image()
	if c := img.RGBAAt(20, 15); c.R < 250 || c.G != 0 {
		t.Errorf("center pixel = %+v, want red", c)
	}
	if c := img.RGBAAt(2, 2); c != (color.RGBA{A: 255}) {
		t.Errorf("corner pixel = %+v, want background", c)
	}

	r.Clear()
	if c := img.RGBAAt(20, 15); c != (color.RGBA{A: 255}) {
		t.Errorf("center pixel after Clear = %+v", c)
	}
}

func TestRasterStrokeLine(t *testing.T) {
	r := NewRaster(50, 50, nil)
	r.StrokeLine(5, 25, 45, 25, 2, color.NRGBA{G: 255, A: 255})

	if c := r.Image().RGBAAt(25, 25); c.G == 0 {
		t.Errorf("pixel on the line = %+v, want green", c)
	}
	if c := r.Image().RGBAAt(25, 10); c != (color.RGBA{}) {
		t.Errorf("pixel off the line = %+v, want transparent", c)
	}
}

func TestRasterIgnoresOffSurfaceShapes(t *testing.T) {
	r := NewRaster(10, 10, nil)
	r.FillCircle(-50, -50, 3, color.NRGBA{R: 255, A: 255})
	r.StrokeLine(100, 100, 200, 200, 1, color.NRGBA{R: 255, A: 255})
	r.StrokeLine(5, 5, 5, 5, 1, color.NRGBA{R: 255, A: 255})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := r.Image().RGBAAt(x, y); c != (color.RGBA{}) {
				t.Fatalf("pixel (%d,%d) = %+v, want untouched", x, y, c)
			}
		}
	}
}

func TestRasterRendersSimulator(t *testing.T) {
	r := NewRaster(1200, 800, color.Black)
	s := New(DefaultParams(), nil)
	s.Init(r, 1200, 800)
	stats, ok := s.Tick()
	if !ok {
		t.Fatal("Tick did not run")
	}
	if stats.Particles == 0 {
		t.Fatal("nothing drawn")
	}
}
