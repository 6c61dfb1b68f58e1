// Package field simulates the ambient particle background: a population of
// drifting, pulsing particles that repel from the pointer and are joined by
// faint lines when close to each other.
package field

import (
	"math"
	"math/rand/v2"
)

type pointer struct {
	x, y    float64
	present bool
}

// Simulator owns the surface, the particle population, the pointer position
// and the frame counter. It is not safe for concurrent use; Loop runs it on a
// single goroutine.
type Simulator struct {
	params Params
	rng    *rand.Rand

	canvas   Canvas
	attached bool
	width    float64
	height   float64

	particles []Particle
	pointer   pointer
	frame     uint64
	state     State
}

// New returns a detached simulator. Init must be called before it does any work.
func New(params Params, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulator{
		params:    params,
		rng:       rng,
		particles: make([]Particle, 0, max(params.MaxParticles, 0)),
		state:     Paused,
	}
}

// Init attaches the simulator to canvas, sizes the surface and generates the
// first population. A nil canvas leaves the simulator detached and reports false.
func (s *Simulator) Init(canvas Canvas, width, height float64) bool {
	if canvas == nil {
		return false
	}
	s.canvas = canvas
	s.attached = true
	s.state = Running
	s.Resize(width, height)
	return true
}

// Dispose detaches the simulator. Every later input is ignored.
func (s *Simulator) Dispose() {
	s.canvas = nil
	s.attached = false
	s.particles = s.particles[:0]
	s.pointer = pointer{}
	s.state = Paused
}

// Resize sets the surface size and replaces the whole population.
func (s *Simulator) Resize(width, height float64) {
	if !s.attached {
		return
	}
	s.width = math.Max(width, 0)
	s.height = math.Max(height, 0)

	n := s.params.PopulationSize(s.width, s.height)
	s.particles = s.particles[:0]
	for range n {
		s.particles = append(s.particles, Particle{})
		spawn(&s.particles[len(s.particles)-1], s.rng, &s.params, s.width, s.height)
	}
}

// PointerMove records the pointer at x, y in surface units.
func (s *Simulator) PointerMove(x, y float64) {
	if !s.attached {
		return
	}
	s.pointer = pointer{x: x, y: y, present: true}
}

// PointerLeave clears the pointer.
func (s *Simulator) PointerLeave() {
	s.pointer = pointer{}
}

// SetHidden drives the RUNNING/PAUSED state machine from the host's visibility
// and reports whether the state changed. The frame counter is kept across a pause.
func (s *Simulator) SetHidden(hidden bool) bool {
	if !s.attached {
		return false
	}
	next := Running
	if hidden {
		next = Paused
	}
	if next == s.state {
		return false
	}
	s.state = next
	return true
}

// Step advances the frame counter and updates every particle. It does nothing
// while paused.
func (s *Simulator) Step() bool {
	if !s.attached || s.state != Running {
		return false
	}
	s.frame++
	s.update()
	return true
}

// Tick runs one Step followed by one Draw.
func (s *Simulator) Tick() (DrawStats, bool) {
	if !s.Step() {
		return DrawStats{}, false
	}
	return s.Draw(), true
}

func (s *Simulator) update() {
	t := float64(s.frame)
	prm := &s.params
	for i := range s.particles {
		p := &s.particles[i]

		p.X += p.VX
		p.Y += p.VY

		p.Radius = p.pulse(t, prm.PulseAmplitude)

		if s.pointer.present {
			dx := p.X - s.pointer.x
			dy := p.Y - s.pointer.y
			if f := prm.repulsion(math.Hypot(dx, dy)); f > 0 {
				angle := math.Atan2(dy, dx)
				p.X += math.Cos(angle) * f
				p.Y += math.Sin(angle) * f
			}
		}

		p.X = wrap(p.X, s.width, prm.Margin)
		p.Y = wrap(p.Y, s.height, prm.Margin)
	}
}

// repulsion returns the displacement applied to a particle d units away from
// the pointer: full strength at the pointer, falling linearly to zero at the radius.
func (p *Params) repulsion(d float64) float64 {
	if d >= p.RepulsionRadius {
		return 0
	}
	return (p.RepulsionRadius - d) / p.RepulsionRadius * p.RepulsionStrength
}

// wrap keeps v inside [-margin, extent+margin). A value past one side moves
// margin units inside the opposite edge of the surface.
func wrap(v, extent, margin float64) float64 {
	switch {
	case v < -margin:
		return extent - margin
	case v >= extent+margin:
		return margin
	}
	return v
}

// Frame returns the number of steps taken since Init.
func (s *Simulator) Frame() uint64 { return s.frame }

// State returns the current run state.
func (s *Simulator) State() State { return s.state }

// Attached reports whether Init succeeded and Dispose has not been called.
func (s *Simulator) Attached() bool { return s.attached }

// Size returns the surface dimensions.
func (s *Simulator) Size() (width, height float64) { return s.width, s.height }

// Len returns the population size.
func (s *Simulator) Len() int { return len(s.particles) }

// Particles returns the population. The slice is reused on the next Resize.
func (s *Simulator) Particles() []Particle { return s.particles }

// Params returns the parameters the simulator was built with.
func (s *Simulator) Params() Params { return s.params }
