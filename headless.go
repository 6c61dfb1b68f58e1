package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/telemetry"
)

type headlessOptions struct {
	Seed      uint64
	MaxTicks  int
	OutputDir string
	Snapshot  string
	LogStats  bool
}

// runHeadless steps the field as fast as possible into an in-memory raster,
// recording frame statistics.
func runHeadless(ctx context.Context, cfg *config.Config, opts headlessOptions) error {
	raster := field.NewRaster(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Background.NRGBA(255))
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	sim := field.New(cfg.FieldParams(), rng)
	sim.Init(raster, float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	defer sim.Dispose()

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	level := slog.LevelDebug
	if opts.LogStats {
		level = slog.LevelInfo
	}
	emit := func(ws telemetry.WindowStats) error {
		slog.LogAttrs(ctx, level, "frame window", ws.LogAttrs()...)
		return om.WriteWindow(ws)
	}

	perf := telemetry.NewCollector(cfg.Telemetry.Window, cfg.Telemetry.FrameBudget())
	for opts.MaxTicks <= 0 || int(sim.Frame()) < opts.MaxTicks {
		if ctx.Err() != nil {
			slog.Info("interrupted", "frame", sim.Frame())
			break
		}

		start := time.Now()
		sim.Step()
		update := time.Since(start)

		start = time.Now()
		stats := sim.Draw()
		draw := time.Since(start)

		ws, ok := perf.Record(sim.Frame(), telemetry.Sample{
			Update:      update,
			Draw:        draw,
			Particles:   sim.Len(),
			Connections: stats.Connections,
		})
		if ok {
			if err := emit(ws); err != nil {
				return err
			}
		}
	}
	if ws, ok := perf.Flush(sim.Frame()); ok {
		if err := emit(ws); err != nil {
			return err
		}
	}

	if opts.Snapshot != "" {
		if err := telemetry.WritePNG(opts.Snapshot, raster.Image()); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		slog.Info("snapshot written", "path", opts.Snapshot)
	}
	slog.Info("headless field finished", "frame", sim.Frame(), "particles", sim.Len())
	return nil
}
