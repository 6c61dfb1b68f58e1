package field

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// HueBand is a half-open range of hue angles in degrees.
type HueBand struct {
	Min float64
	Max float64
}

// Params controls population sizing, particle creation, the pointer field and
// connection rendering.
type Params struct {
	// Population
	AreaPerParticle float64 // surface area that earns one particle
	MaxParticles    int
	Margin          float64 // wrap margin outside the surface

	// Creation ranges, all half-open [min, max)
	SizeMin, SizeMax             float64
	Speed                        float64 // velocity components in [-Speed, Speed)
	OpacityMin, OpacityMax       float64
	PulseSpeedMin, PulseSpeedMax float64
	PulseAmplitude               float64
	HueBands                     []HueBand
	Saturation                   float64
	Lightness                    float64

	// Pointer
	RepulsionRadius   float64
	RepulsionStrength float64

	// Connections
	ConnectionDistance float64
	MaxConnectionAlpha float64 // alpha at zero distance
	ConnectionColor    color.NRGBA
	LineWidth          float64
}

// DefaultParams returns the stock field: at most 100 particles, a 120 unit
// repulsion radius and 100 unit connections.
func DefaultParams() Params {
	return Params{
		AreaPerParticle: 12000,
		MaxParticles:    100,
		Margin:          10,

		SizeMin:        0.3,
		SizeMax:        2.1,
		Speed:          0.2,
		OpacityMin:     0.1,
		OpacityMax:     0.6,
		PulseSpeedMin:  0.005,
		PulseSpeedMax:  0.02,
		PulseAmplitude: 0.5,
		HueBands: []HueBand{
			{Min: 250, Max: 280}, // purple-blue
			{Min: 290, Max: 320}, // pink-violet
		},
		Saturation: 0.8,
		Lightness:  0.65,

		RepulsionRadius:   120,
		RepulsionStrength: 3,

		ConnectionDistance: 100,
		MaxConnectionAlpha: 0.12,
		ConnectionColor:    color.NRGBA{R: 139, G: 92, B: 246, A: 255},
		LineWidth:          0.5,
	}
}

// Validate reports parameter combinations the simulator cannot work with.
func (p Params) Validate() error {
	var errs []error
	if p.AreaPerParticle <= 0 {
		errs = append(errs, fmt.Errorf("area per particle must be positive, got %g", p.AreaPerParticle))
	}
	if p.MaxParticles < 0 {
		errs = append(errs, fmt.Errorf("max particles must not be negative, got %d", p.MaxParticles))
	}
	if p.Margin < 0 {
		errs = append(errs, fmt.Errorf("margin must not be negative, got %g", p.Margin))
	}
	for _, r := range []struct {
		name     string
		min, max float64
	}{
		{"size", p.SizeMin, p.SizeMax},
		{"opacity", p.OpacityMin, p.OpacityMax},
		{"pulse speed", p.PulseSpeedMin, p.PulseSpeedMax},
	} {
		if r.min > r.max {
			errs = append(errs, fmt.Errorf("%s range is inverted: [%g, %g)", r.name, r.min, r.max))
		}
	}
	if p.OpacityMin < 0 || p.OpacityMax > 1 {
		errs = append(errs, fmt.Errorf("opacity range [%g, %g) outside [0, 1]", p.OpacityMin, p.OpacityMax))
	}
	if p.Saturation < 0 || p.Saturation > 1 || p.Lightness < 0 || p.Lightness > 1 {
		errs = append(errs, fmt.Errorf("saturation %g and lightness %g must lie in [0, 1]", p.Saturation, p.Lightness))
	}
	if len(p.HueBands) == 0 {
		errs = append(errs, errors.New("at least one hue band is required"))
	}
	for i, b := range p.HueBands {
		if b.Min > b.Max {
			errs = append(errs, fmt.Errorf("hue band %d is inverted: [%g, %g)", i, b.Min, b.Max))
		}
	}
	if p.RepulsionRadius < 0 {
		errs = append(errs, fmt.Errorf("repulsion radius must not be negative, got %g", p.RepulsionRadius))
	}
	if p.ConnectionDistance < 0 {
		errs = append(errs, fmt.Errorf("connection distance must not be negative, got %g", p.ConnectionDistance))
	}
	return errors.Join(errs...)
}

// PopulationSize returns how many particles a width x height surface holds.
func (p Params) PopulationSize(width, height float64) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	n := math.Floor(width * height / p.AreaPerParticle)
	if n > float64(p.MaxParticles) {
		return p.MaxParticles
	}
	return int(n)
}
