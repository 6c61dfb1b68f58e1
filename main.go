package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/game"
	"github.com/iburimskiy/particle-field/internal/term"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	pickConfig := flag.Bool("pick-config", false, "Choose the config file in a dialog")
	termMode := flag.Bool("term", false, "Render in the terminal")
	headless := flag.Bool("headless", false, "Run without graphics")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks in headless mode (0 = until interrupted)")
	outputDir := flag.String("output-dir", "", "Directory for frames.csv and the config snapshot")
	snapshot := flag.String("snapshot", "", "Write the final headless frame to this PNG")
	logStats := flag.Bool("log-stats", false, "Log frame statistics windows at info level")
	logFile := flag.String("log-file", "", "Log destination (terminal mode discards logs without it)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = random)")

	flag.Parse()

	desktop := !*termMode && !*headless

	logger, closeLog, err := newLogger(*logLevel, *logFile, *termMode, *headless)
	if err != nil {
		fail(desktop, func() {}, err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	path := *configPath
	if *pickConfig {
		chosen, err := chooseConfigFile()
		if err != nil {
			fail(desktop, closeLog, err)
		}
		if chosen != "" {
			path = chosen
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("failed to load config", "path", path, "error", err)
		fail(desktop, closeLog, err)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = rand.Uint64()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *headless:
		slog.Info("starting headless field", "seed", rngSeed, "max_ticks", *maxTicks)
		err = runHeadless(ctx, cfg, headlessOptions{
			Seed:      rngSeed,
			MaxTicks:  *maxTicks,
			OutputDir: *outputDir,
			Snapshot:  *snapshot,
			LogStats:  *logStats,
		})
	case *termMode:
		slog.Info("starting terminal field", "seed", rngSeed)
		err = term.Run(ctx, term.Options{Config: cfg, Seed: rngSeed, Logger: logger})
	default:
		slog.Info("starting desktop field", "seed", rngSeed, "width", cfg.Screen.Width, "height", cfg.Screen.Height)
		err = runDesktop(cfg, rngSeed, logger)
	}
	if err != nil {
		slog.Error("field stopped with error", "error", err)
		stop()
		fail(desktop, closeLog, err)
	}
}

func runDesktop(cfg *config.Config, seed uint64, logger *slog.Logger) error {
	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetTPS(cfg.Screen.TPS)
	if cfg.Screen.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	// Focus changes are handled by the game, which pauses the field itself.
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetScreenClearedEveryFrame(false)

	g := game.NewGame(game.Options{Config: cfg, Seed: seed, Logger: logger})
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// newLogger builds the slog logger for the selected frontend: JSON on stdout
// for headless runs, text on stderr for the window, and a file or nothing for
// the terminal, whose screen owns stdout.
func newLogger(level, file string, termMode, headless bool) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case file != "":
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case termMode:
		w = io.Discard
	case headless:
		w = os.Stdout
	}

	if headless {
		return slog.New(slog.NewJSONHandler(w, opts)), closeFn, nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), closeFn, nil
}

// fail reports a fatal error and exits. os.Exit skips deferred calls, so the
// log is closed here.
func fail(desktop bool, closeLog func(), err error) {
	report(os.Stderr, desktop, closeLog, err)
	os.Exit(1)
}

// report closes the log and prints err. The window frontend also shows it in
// a dialog, since it is usually started without a console.
func report(w io.Writer, desktop bool, closeLog func(), err error) {
	closeLog()
	fmt.Fprintf(w, "particle-field: %v\n", err)
	if desktop {
		showError(err)
	}
}
