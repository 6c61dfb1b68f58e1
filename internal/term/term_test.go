package term

import (
	"context"
	"image/color"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(cols, rows)
	return s
}

func TestTranslate(t *testing.T) {
	canvas := newCellCanvas(nil, 8, 16)
	tests := []struct {
		name string
		ev   tcell.Event
		want []field.Event
		quit bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil, true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), nil, true},
		{"other key", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), nil, false},
		{"resize", tcell.NewEventResize(100, 40), []field.Event{field.Resize{Width: 800, Height: 640}}, false},
		{"mouse", tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone), []field.Event{field.PointerMove{X: 28, Y: 40}}, false},
		{"focus lost", tcell.NewEventFocus(false), []field.Event{field.PointerLeave{}, field.Visibility{Hidden: true}}, false},
		{"focus gained", tcell.NewEventFocus(true), []field.Event{field.Visibility{Hidden: false}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := translate(tt.ev, canvas)
			if quit != tt.quit {
				t.Errorf("quit = %v, want %v", quit, tt.quit)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("events = %#v, want %#v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %#v, want %#v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// feed applies translated terminal events the way the loop does.
func feed(t *testing.T, sim *field.Simulator, canvas *cellCanvas, evs ...tcell.Event) {
	t.Helper()
	for _, ev := range evs {
		fes, _ := translate(ev, canvas)
		for _, fe := range fes {
			switch fe := fe.(type) {
			case field.Resize:
				sim.Resize(fe.Width, fe.Height)
			case field.PointerMove:
				sim.PointerMove(fe.X, fe.Y)
			case field.PointerLeave:
				sim.PointerLeave()
			case field.Visibility:
				sim.SetHidden(fe.Hidden)
			default:
				t.Fatalf("unexpected event %#v", fe)
			}
		}
	}
}

func TestFocusLossClearsPointer(t *testing.T) {
	screen := newSimScreen(t, 100, 40)
	defer screen.Fini()
	canvas := newCellCanvas(screen, 8, 16)
	sim := field.New(field.DefaultParams(), rand.New(rand.NewPCG(3, 4)))
	sim.Init(canvas, 800, 640)
	defer sim.Dispose()

	// Cell (50,20) is the surface point (404,328).
	placeNear := func() {
		p := &sim.Particles()[0]
		p.X, p.Y, p.VX, p.VY = 409, 328, 0, 0
	}

	feed(t, sim, canvas, tcell.NewEventMouse(50, 20, tcell.ButtonNone, tcell.ModNone))
	placeNear()
	sim.Step()
	if p := sim.Particles()[0]; p.X == 409 && p.Y == 328 {
		t.Fatal("particle next to the pointer was not pushed")
	}

	feed(t, sim, canvas, tcell.NewEventFocus(false), tcell.NewEventFocus(true))
	if sim.State() != field.Running {
		t.Fatalf("state = %v after refocus, want running", sim.State())
	}
	placeNear()
	sim.Step()
	if p := sim.Particles()[0]; p.X != 409 || p.Y != 328 {
		t.Errorf("particle moved to (%g,%g) after focus loss cleared the pointer", p.X, p.Y)
	}
}

func TestCellCanvasDrawsParticlesAndLines(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	defer screen.Fini()
	c := newCellCanvas(screen, 8, 16)

	c.Clear()
	c.StrokeLine(4, 8, 76, 8, 0.5, color.NRGBA{R: 139, G: 92, B: 246, A: 30})
	c.FillCircle(4, 8, 2, color.NRGBA{R: 200, G: 100, B: 255, A: 255})
	c.FillCircle(44, 40, 0.5, color.NRGBA{R: 200, G: 100, B: 255, A: 128})
	c.FillCircle(-20, 8, 2, color.NRGBA{R: 255, A: 255}) // off screen
	c.flush()
	screen.Show()

	tests := []struct {
		col, row int
		want     rune
	}{
		{0, 0, glyphLarge},
		{5, 0, glyphLine},
		{9, 0, glyphLine},
		{5, 2, glyphSmall},
		{5, 4, ' '},
	}
	for _, tt := range tests {
		r, _, _, _ := screen.GetContent(tt.col, tt.row)
		if r != tt.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tt.col, tt.row, r, tt.want)
		}
	}

	c.Clear()
	c.flush()
	screen.Show()
	if r, _, _, _ := screen.GetContent(0, 0); r != ' ' {
		t.Errorf("cell after Clear = %q, want blank", r)
	}
}

func TestCellCanvasFollowsScreenSize(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	defer screen.Fini()
	c := newCellCanvas(screen, 8, 16)
	c.Clear()
	if len(c.cells) != 50 {
		t.Fatalf("cells = %d, want 50", len(c.cells))
	}
	screen.SetSize(20, 6)
	c.Clear()
	if c.cols != 20 || c.rows != 6 || len(c.cells) != 120 {
		t.Errorf("canvas = %dx%d (%d cells), want 20x6", c.cols, c.rows, len(c.cells))
	}
}

func TestGlyphFor(t *testing.T) {
	if g := glyphFor(0.5, 0); g != glyphSmall {
		t.Errorf("small radius glyph = %q", g)
	}
	if g := glyphFor(1.2, glyphLine); g != glyphMedium {
		t.Errorf("medium radius glyph = %q", g)
	}
	if g := glyphFor(0.5, glyphLarge); g != glyphLarge {
		t.Errorf("a small particle replaced a large glyph: %q", g)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	screen := newSimScreen(t, 80, 24)
	defer screen.Fini()

	done := make(chan error, 1)
	go func() {
		done <- run(context.Background(), screen, Options{
			Config: cfg,
			Seed:   7,
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
	}()

	time.Sleep(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop on q")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	screen := newSimScreen(t, 40, 12)
	defer screen.Fini()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := run(ctx, screen, Options{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}); err != nil {
		t.Fatalf("run returned %v", err)
	}
}
