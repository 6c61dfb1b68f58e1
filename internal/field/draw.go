package field

import "math"

// DrawStats counts what one Draw rendered.
type DrawStats struct {
	Connections int
	Particles   int
}

// ConnectionAlpha returns the line alpha for two particles d units apart.
// It falls linearly from the maximum at d == 0 to zero at the connection distance.
func (p *Params) ConnectionAlpha(d float64) float64 {
	if d >= p.ConnectionDistance {
		return 0
	}
	return (1 - d/p.ConnectionDistance) * p.MaxConnectionAlpha
}

// Draw clears the canvas, then renders connections followed by particles.
// It does nothing while paused.
func (s *Simulator) Draw() DrawStats {
	var stats DrawStats
	if !s.attached || s.state != Running {
		return stats
	}
	prm := &s.params
	c := s.canvas

	c.Clear()

	// O(n²) over unordered pairs; MaxParticles keeps this inside a frame.
	n := len(s.particles)
	for i := 0; i < n; i++ {
		a := &s.particles[i]
		for j := i + 1; j < n; j++ {
			b := &s.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= prm.ConnectionDistance {
				continue
			}
			col := withAlpha(prm.ConnectionColor, prm.ConnectionAlpha(d))
			c.StrokeLine(a.X, a.Y, b.X, b.Y, prm.LineWidth, col)
			stats.Connections++
		}
	}

	for i := range s.particles {
		p := &s.particles[i]
		if p.Radius <= 0 {
			continue
		}
		c.FillCircle(p.X, p.Y, p.Radius, p.Color)
		stats.Particles++
	}
	return stats
}
