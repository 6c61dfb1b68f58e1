package field

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Particle is one record of the population arena. Only X, Y and Radius change
// after creation.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Size       float64 // base radius
	Opacity    float64
	PulseSpeed float64
	PulsePhase float64
	Hue        float64
	Color      color.NRGBA // Hue, saturation, lightness and opacity resolved once

	Radius float64 // rendered radius for the current frame
}

// pulse returns the rendered radius at frame t.
func (p *Particle) pulse(t, amplitude float64) float64 {
	return p.Size + math.Sin(t*p.PulseSpeed+p.PulsePhase)*amplitude
}

// spawn fills p with a fresh particle placed uniformly on a width x height
// surface.
func spawn(p *Particle, rng *rand.Rand, prm *Params, width, height float64) {
	band := prm.HueBands[rng.IntN(len(prm.HueBands))]
	hue := uniform(rng, band.Min, band.Max)
	opacity := uniform(rng, prm.OpacityMin, prm.OpacityMax)

	*p = Particle{
		X:          rng.Float64() * width,
		Y:          rng.Float64() * height,
		VX:         uniform(rng, -prm.Speed, prm.Speed),
		VY:         uniform(rng, -prm.Speed, prm.Speed),
		Size:       uniform(rng, prm.SizeMin, prm.SizeMax),
		Opacity:    opacity,
		PulseSpeed: uniform(rng, prm.PulseSpeedMin, prm.PulseSpeedMax),
		PulsePhase: rng.Float64() * 2 * math.Pi,
		Hue:        hue,
		Color:      hsla(hue, prm.Saturation, prm.Lightness, opacity),
	}
	p.Radius = p.Size
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
