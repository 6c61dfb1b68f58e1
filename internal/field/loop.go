package field

import (
	"context"
	"log/slog"
	"time"
)

// Event is an input from the host environment.
type Event interface {
	apply(s *Simulator)
}

// Resize reports new viewport dimensions.
type Resize struct{ Width, Height float64 }

// PointerMove reports the pointer position in surface units.
type PointerMove struct{ X, Y float64 }

// PointerLeave reports that the pointer left the surface.
type PointerLeave struct{}

// Visibility reports whether the host is hidden.
type Visibility struct{ Hidden bool }

func (e Resize) apply(s *Simulator)      { s.Resize(e.Width, e.Height) }
func (e PointerMove) apply(s *Simulator) { s.PointerMove(e.X, e.Y) }
func (PointerLeave) apply(s *Simulator)  { s.PointerLeave() }
func (e Visibility) apply(s *Simulator)  { s.SetHidden(e.Hidden) }

// Ticker is a cancellable repeating frame source.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker returns a Ticker backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// DefaultInterval is one frame at 60Hz.
const DefaultInterval = time.Second / 60

// Loop runs a Simulator on the calling goroutine, one Tick per ticker fire.
// While the simulator is paused no ticker exists, so no frame is scheduled.
type Loop struct {
	Sim      *Simulator
	Interval time.Duration

	// NewTicker defaults to NewTimeTicker.
	NewTicker func(time.Duration) Ticker

	// AfterFrame is called after every drawn frame.
	AfterFrame func(DrawStats)

	Logger *slog.Logger
}

// Run processes events and frames until ctx is done or events is closed.
// A detached simulator returns immediately without reading any event.
func (l *Loop) Run(ctx context.Context, events <-chan Event) error {
	if !l.Sim.Attached() {
		return nil
	}
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	newTicker := l.NewTicker
	if newTicker == nil {
		newTicker = NewTimeTicker
	}

	var (
		ticker Ticker
		frames <-chan time.Time
	)
	start := func() {
		ticker = newTicker(interval)
		frames = ticker.C()
	}
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, frames = nil, nil
		}
	}
	defer stop()

	if l.Sim.State() == Running {
		start()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			before := l.Sim.State()
			ev.apply(l.Sim)
			after := l.Sim.State()

			switch {
			case before == Running && after == Paused:
				stop()
				log.Info("field paused", "frame", l.Sim.Frame())
			case before == Paused && after == Running:
				start()
				log.Info("field resumed", "frame", l.Sim.Frame())
			}
			if r, ok := ev.(Resize); ok {
				log.Info("field resized", "width", r.Width, "height", r.Height, "particles", l.Sim.Len())
			}

		case <-frames:
			stats, drawn := l.Sim.Tick()
			if drawn && l.AfterFrame != nil {
				l.AfterFrame(stats)
			}
		}
	}
}
