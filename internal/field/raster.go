package field

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// circleSegments is the polygon resolution used for particle discs.
const circleSegments = 24

// Raster is a software Canvas backed by an *image.RGBA.
type Raster struct {
	img        *image.RGBA
	z          *vector.Rasterizer
	background color.Color
}

// NewRaster returns a width x height raster cleared to background. A nil
// background clears to transparent.
func NewRaster(width, height int, background color.Color) *Raster {
	if background == nil {
		background = color.Transparent
	}
	r := &Raster{background: background}
	r.Resize(width, height)
	return r
}

// Resize reallocates the backing image.
func (r *Raster) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.z = vector.NewRasterizer(width, height)
	r.Clear()
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
}

func (r *Raster) FillCircle(x, y, radius float64, c color.NRGBA) {
	if radius <= 0 || !r.touches(x-radius, y-radius, x+radius, y+radius) {
		return
	}
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.MoveTo(float32(x+radius), float32(y))
	for i := 1; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		r.z.LineTo(float32(x+radius*math.Cos(a)), float32(y+radius*math.Sin(a)))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

// StrokeLine draws the segment as a quad width units wide.
func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 || width <= 0 {
		return
	}
	h := width / 2
	if !r.touches(math.Min(x0, x1)-h, math.Min(y0, y1)-h, math.Max(x0, x1)+h, math.Max(y0, y1)+h) {
		return
	}
	nx := -(y1 - y0) / length * h
	ny := (x1 - x0) / length * h

	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.MoveTo(float32(x0+nx), float32(y0+ny))
	r.z.LineTo(float32(x1+nx), float32(y1+ny))
	r.z.LineTo(float32(x1-nx), float32(y1-ny))
	r.z.LineTo(float32(x0-nx), float32(y0-ny))
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

// touches reports whether the box overlaps the image.
func (r *Raster) touches(minX, minY, maxX, maxY float64) bool {
	b := r.img.Bounds()
	return maxX >= 0 && maxY >= 0 && minX < float64(b.Dx()) && minY < float64(b.Dy())
}
