// Package telemetry aggregates per-frame timings of the particle field into
// fixed windows and writes them out.
package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is the cost of one frame.
type Sample struct {
	Update      time.Duration
	Draw        time.Duration
	Particles   int
	Connections int
}

// WindowStats summarizes a window of frames.
type WindowStats struct {
	WindowEnd       uint64  `csv:"window_end"`
	Frames          int     `csv:"frames"`
	Particles       int     `csv:"particles"`
	ConnectionsMean float64 `csv:"connections_mean"`
	ConnectionsStd  float64 `csv:"connections_std"`
	UpdateMeanUs    float64 `csv:"update_mean_us"`
	UpdateStdUs     float64 `csv:"update_std_us"`
	DrawMeanUs      float64 `csv:"draw_mean_us"`
	DrawStdUs       float64 `csv:"draw_std_us"`
	FrameMaxUs      float64 `csv:"frame_max_us"`
	Overruns        int     `csv:"overruns"`
}

// LogAttrs returns the stats as slog attributes.
func (w WindowStats) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Uint64("window_end", w.WindowEnd),
		slog.Int("frames", w.Frames),
		slog.Int("particles", w.Particles),
		slog.Float64("connections_mean", w.ConnectionsMean),
		slog.Float64("update_mean_us", w.UpdateMeanUs),
		slog.Float64("draw_mean_us", w.DrawMeanUs),
		slog.Float64("frame_max_us", w.FrameMaxUs),
		slog.Int("overruns", w.Overruns),
	}
}

// Collector accumulates samples and emits WindowStats every window frames.
type Collector struct {
	window int
	budget time.Duration

	update      []float64
	draw        []float64
	total       []float64
	connections []float64
	particles   int
	overruns    int
}

// NewCollector creates a collector. A frame whose update plus draw exceeds
// budget counts as an overrun; a zero budget disables overrun counting.
func NewCollector(window int, budget time.Duration) *Collector {
	if window < 1 {
		window = 60
	}
	return &Collector{
		window:      window,
		budget:      budget,
		update:      make([]float64, 0, window),
		draw:        make([]float64, 0, window),
		total:       make([]float64, 0, window),
		connections: make([]float64, 0, window),
	}
}

// Record adds the sample for frame and returns the window stats when the
// window is complete.
func (c *Collector) Record(frame uint64, s Sample) (WindowStats, bool) {
	frameTime := s.Update + s.Draw
	c.update = append(c.update, micros(s.Update))
	c.draw = append(c.draw, micros(s.Draw))
	c.total = append(c.total, micros(frameTime))
	c.connections = append(c.connections, float64(s.Connections))
	c.particles = s.Particles
	if c.budget > 0 && frameTime > c.budget {
		c.overruns++
	}

	if len(c.update) < c.window {
		return WindowStats{}, false
	}
	return c.Flush(frame)
}

// Flush returns stats for the samples recorded so far and starts a new window.
func (c *Collector) Flush(frame uint64) (WindowStats, bool) {
	if len(c.update) == 0 {
		return WindowStats{}, false
	}
	ws := WindowStats{
		WindowEnd:  frame,
		Frames:     len(c.update),
		Particles:  c.particles,
		FrameMaxUs: floats.Max(c.total),
		Overruns:   c.overruns,
	}
	ws.UpdateMeanUs, ws.UpdateStdUs = meanStd(c.update)
	ws.DrawMeanUs, ws.DrawStdUs = meanStd(c.draw)
	ws.ConnectionsMean, ws.ConnectionsStd = meanStd(c.connections)

	c.update = c.update[:0]
	c.draw = c.draw[:0]
	c.total = c.total[:0]
	c.connections = c.connections[:0]
	c.overruns = 0
	return ws, true
}

// meanStd is stat.MeanStdDev with a zero deviation for a single sample.
func meanStd(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}
