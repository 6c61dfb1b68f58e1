// Package term runs the particle field in a terminal.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
)

// Options configures a terminal run.
type Options struct {
	Config *config.Config
	Seed   uint64
	Logger *slog.Logger
}

// Run takes over the terminal until ctx is done or the user quits with
// Esc, q or Ctrl-C.
func Run(ctx context.Context, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	return run(ctx, screen, opts)
}

// run drives an initialized screen. The caller owns Fini.
func run(ctx context.Context, screen tcell.Screen, opts Options) error {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	canvas := newCellCanvas(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	sim := field.New(cfg.FieldParams(), rng)

	cols, rows := screen.Size()
	w, h := canvas.surfaceSize(cols, rows)
	sim.Init(canvas, w, h)
	defer sim.Dispose()
	log.Info("terminal field started", "cols", cols, "rows", rows, "particles", sim.Len())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan field.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			fes, quit := translate(ev, canvas)
			if quit {
				cancel()
				return
			}
			for _, fe := range fes {
				select {
				case events <- fe:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	loop := &field.Loop{
		Sim:      sim,
		Interval: cfg.Terminal.FrameInterval(),
		AfterFrame: func(field.DrawStats) {
			canvas.flush()
			screen.Show()
		},
		Logger: log,
	}
	err := loop.Run(ctx, events)
	log.Info("terminal field stopped", "frame", sim.Frame())
	return err
}

// translate maps a terminal event onto field events, in the order they must
// be applied. quit is set for the exit keys.
//
// Terminals report no mouse-leave, so losing focus also clears the pointer.
func translate(ev tcell.Event, canvas *cellCanvas) (fes []field.Event, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return nil, true
		}

	case *tcell.EventResize:
		w, h := canvas.surfaceSize(ev.Size())
		return []field.Event{field.Resize{Width: w, Height: h}}, false

	case *tcell.EventMouse:
		x, y := canvas.toSurface(ev.Position())
		return []field.Event{field.PointerMove{X: x, Y: y}}, false

	case *tcell.EventFocus:
		if !ev.Focused {
			return []field.Event{field.PointerLeave{}, field.Visibility{Hidden: true}}, false
		}
		return []field.Event{field.Visibility{Hidden: false}}, false
	}
	return nil, false
}
