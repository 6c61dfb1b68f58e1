// Package game runs the particle field in a desktop window.
package game

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/telemetry"
)

const (
	// HUD graph
	graphX      = 12
	graphY      = 30
	graphHeight = 40
	graphBarW   = 2
)

// Options configures a desktop game.
type Options struct {
	Config *config.Config
	Seed   uint64
	Logger *slog.Logger
}

type game struct {
	cfg *config.Config
	log *slog.Logger

	// field
	sim    *field.Simulator
	canvas *screenCanvas

	// surface size last reported by Layout
	width, height int

	// frame timing
	perf       *telemetry.Collector
	tap        *frameTap
	budget     time.Duration
	lastUpdate time.Duration
	stepped    bool
	lastStats  field.DrawStats

	// state
	showHUD bool
	started time.Time
}

func NewGame(opts Options) *game {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	canvas := &screenCanvas{background: cfg.Screen.Background.NRGBA(255)}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	sim := field.New(cfg.FieldParams(), rng)
	sim.Init(canvas, float64(cfg.Screen.Width), float64(cfg.Screen.Height))

	return &game{
		cfg:     cfg,
		log:     log,
		sim:     sim,
		canvas:  canvas,
		width:   cfg.Screen.Width,
		height:  cfg.Screen.Height,
		perf:    telemetry.NewCollector(cfg.Telemetry.Window, cfg.Telemetry.FrameBudget()),
		tap:     newFrameTap(cfg.Telemetry.HUDSamples),
		budget:  cfg.Telemetry.FrameBudget(),
		started: time.Now(),
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	g.setHidden(windowHidden(ebiten.IsWindowMinimized(), ebiten.IsFocused(), g.cfg.Screen.PauseUnfocused))

	mouseX, mouseY := ebiten.CursorPosition()
	g.pointer(mouseX, mouseY)

	g.step()
	return nil
}

// windowHidden reports whether the window counts as hidden for pausing.
func windowHidden(minimized, focused, pauseUnfocused bool) bool {
	return minimized || (pauseUnfocused && !focused)
}

// step advances the field unless the previous step is still waiting for
// Draw. Ebiten may call Update several times per drawn frame.
func (g *game) step() {
	if g.stepped {
		return
	}
	start := time.Now()
	if g.sim.Step() {
		g.lastUpdate = time.Since(start)
		g.stepped = true
	}
}

func (g *game) setHidden(hidden bool) {
	if !g.sim.SetHidden(hidden) {
		return
	}
	if hidden {
		g.log.Info("field paused", "frame", g.sim.Frame())
	} else {
		g.log.Info("field resumed", "frame", g.sim.Frame())
	}
}

// pointer forwards the cursor, treating positions outside the window as a
// pointer that left.
func (g *game) pointer(x, y int) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		g.sim.PointerLeave()
		return
	}
	g.sim.PointerMove(float64(x), float64(y))
}

func (g *game) Draw(screen *ebiten.Image) {
	// The screen is not cleared between frames, so a paused field keeps its
	// last picture without drawing.
	if g.sim.State() != field.Running {
		return
	}

	g.canvas.target = screen
	start := time.Now()
	stats := g.sim.Draw()
	drawTime := time.Since(start)
	g.lastStats = stats

	g.presented(stats, drawTime)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

// presented records the timing of a drawn step and releases the next one.
func (g *game) presented(stats field.DrawStats, drawTime time.Duration) {
	if !g.stepped {
		return
	}
	g.stepped = false
	g.tap.record(g.lastUpdate + drawTime)
	sample := telemetry.Sample{
		Update:      g.lastUpdate,
		Draw:        drawTime,
		Particles:   g.sim.Len(),
		Connections: stats.Connections,
	}
	if ws, ok := g.perf.Record(g.sim.Frame(), sample); ok {
		g.log.LogAttrs(context.Background(), slog.LevelDebug, "frame window", ws.LogAttrs()...)
	}
}

func (g *game) drawHUD(screen *ebiten.Image) {
	status := fmt.Sprintf("%s | frame %d | particles %d | links %d | FPS %.0f | up %s",
		g.sim.State(), g.sim.Frame(), g.sim.Len(), g.lastStats.Connections,
		ebiten.ActualFPS(), formatDuration(time.Since(g.started)))
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	samples := g.tap.snapshot(g.tap.len())
	if len(samples) == 0 {
		return
	}

	graphWidth := float32(len(g.tap.buffer) * graphBarW)
	vector.DrawFilledRect(screen, graphX, graphY, graphWidth, graphHeight, color.NRGBA{R: 20, G: 25, B: 35, A: 200}, false)

	for i, d := range samples {
		ratio := budgetRatio(d, g.budget)
		h := float32(ratio * graphHeight)
		if h < 1 {
			h = 1
		}
		// Green when cheap, red at the frame budget.
		c := colorful.Hsl(120*(1-ratio), 0.8, 0.5)
		x := float32(graphX + i*graphBarW)
		vector.DrawFilledRect(screen, x, graphY+graphHeight-h, graphBarW, h, c, false)
	}
	vector.StrokeRect(screen, graphX, graphY, graphWidth, graphHeight, 1, color.NRGBA{R: 60, G: 70, B: 90, A: 255}, false)

	last := samples[len(samples)-1]
	ebitenutil.DebugPrintAt(screen, formatMicros(last), graphX, graphY+graphHeight+4)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.log.Info("field resized",
			"from", fmt.Sprintf("%dx%d", g.width, g.height),
			"to", fmt.Sprintf("%dx%d", outsideWidth, outsideHeight),
		)
		g.width, g.height = outsideWidth, outsideHeight
		g.sim.Resize(float64(outsideWidth), float64(outsideHeight))
		g.log.Debug("population regenerated", "particles", g.sim.Len())
	}
	return outsideWidth, outsideHeight
}

// Close detaches the field from the window.
func (g *game) Close() {
	g.sim.Dispose()
}
