// Package config loads the particle field configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/particle-field/internal/field"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the program.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Field       FieldConfig       `yaml:"field"`
	Pointer     PointerConfig     `yaml:"pointer"`
	Connections ConnectionsConfig `yaml:"connections"`
	Terminal    TerminalConfig    `yaml:"terminal"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
}

// RGB is an opaque color.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// NRGBA returns c with the given alpha.
func (c RGB) NRGBA(a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// ScreenConfig holds desktop window settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TPS        int    `yaml:"tps"`
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	Background RGB    `yaml:"background"`

	// PauseUnfocused also pauses a visible window that lost focus. A
	// minimized window always pauses.
	PauseUnfocused bool `yaml:"pause_unfocused"`
}

// FieldConfig holds population and particle creation parameters.
type FieldConfig struct {
	AreaPerParticle float64   `yaml:"area_per_particle"`
	MaxParticles    int       `yaml:"max_particles"`
	Margin          float64   `yaml:"margin"`
	SizeMin         float64   `yaml:"size_min"`
	SizeMax         float64   `yaml:"size_max"`
	Speed           float64   `yaml:"speed"`
	OpacityMin      float64   `yaml:"opacity_min"`
	OpacityMax      float64   `yaml:"opacity_max"`
	PulseSpeedMin   float64   `yaml:"pulse_speed_min"`
	PulseSpeedMax   float64   `yaml:"pulse_speed_max"`
	PulseAmplitude  float64   `yaml:"pulse_amplitude"`
	HueBands        []HueBand `yaml:"hue_bands"`
	Saturation      float64   `yaml:"saturation"`
	Lightness       float64   `yaml:"lightness"`
}

// HueBand is a hue range in degrees.
type HueBand struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// PointerConfig holds the pointer repulsion field.
type PointerConfig struct {
	RepulsionRadius   float64 `yaml:"repulsion_radius"`
	RepulsionStrength float64 `yaml:"repulsion_strength"` // displacement at zero distance
}

// ConnectionsConfig holds line rendering between nearby particles.
type ConnectionsConfig struct {
	MaxDistance float64 `yaml:"max_distance"`
	MaxAlpha    float64 `yaml:"max_alpha"`
	Color       RGB     `yaml:"color"`
	LineWidth   float64 `yaml:"line_width"`
}

// TerminalConfig maps terminal cells onto surface units.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	FPS        int     `yaml:"fps"`
}

// TelemetryConfig holds frame statistics settings.
type TelemetryConfig struct {
	Window        int     `yaml:"window"`          // ticks per statistics window
	FrameBudgetMs float64 `yaml:"frame_budget_ms"` // update+draw above this counts as an overrun
	HUDSamples    int     `yaml:"hud_samples"`     // frame times kept for the HUD graph
}

// FrameBudget returns the frame budget as a duration.
func (t TelemetryConfig) FrameBudget() time.Duration {
	return time.Duration(t.FrameBudgetMs * float64(time.Millisecond))
}

// FrameInterval returns the terminal frame interval.
func (t TerminalConfig) FrameInterval() time.Duration {
	if t.FPS <= 0 {
		return field.DefaultInterval
	}
	return time.Second / time.Duration(t.FPS)
}

// Load reads the embedded defaults and overlays the YAML file at path, if any.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that are not covered by field.Params.Validate.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.TPS <= 0 {
		errs = append(errs, fmt.Errorf("screen tps must be positive, got %d", c.Screen.TPS))
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("terminal cell size must be positive, got %gx%g", c.Terminal.CellWidth, c.Terminal.CellHeight))
	}
	if c.Telemetry.Window <= 0 {
		errs = append(errs, fmt.Errorf("telemetry window must be positive, got %d", c.Telemetry.Window))
	}
	if err := c.FieldParams().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FieldParams converts the field, pointer and connection sections into
// simulator parameters.
func (c *Config) FieldParams() field.Params {
	f := c.Field
	bands := make([]field.HueBand, len(f.HueBands))
	for i, b := range f.HueBands {
		bands[i] = field.HueBand{Min: b.Min, Max: b.Max}
	}
	return field.Params{
		AreaPerParticle: f.AreaPerParticle,
		MaxParticles:    f.MaxParticles,
		Margin:          f.Margin,

		SizeMin:        f.SizeMin,
		SizeMax:        f.SizeMax,
		Speed:          f.Speed,
		OpacityMin:     f.OpacityMin,
		OpacityMax:     f.OpacityMax,
		PulseSpeedMin:  f.PulseSpeedMin,
		PulseSpeedMax:  f.PulseSpeedMax,
		PulseAmplitude: f.PulseAmplitude,
		HueBands:       bands,
		Saturation:     f.Saturation,
		Lightness:      f.Lightness,

		RepulsionRadius:   c.Pointer.RepulsionRadius,
		RepulsionStrength: c.Pointer.RepulsionStrength,

		ConnectionDistance: c.Connections.MaxDistance,
		MaxConnectionAlpha: c.Connections.MaxAlpha,
		ConnectionColor:    c.Connections.Color.NRGBA(255),
		LineWidth:          c.Connections.LineWidth,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
