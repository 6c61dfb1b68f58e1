package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/iburimskiy/particle-field/internal/field"
)

func TestDefaultsMatchFieldDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.FieldParams(), field.DefaultParams(); !reflect.DeepEqual(got, want) {
		t.Errorf("embedded defaults diverge from field.DefaultParams:\n got %+v\nwant %+v", got, want)
	}
	if cfg.Screen.Width != 1200 || cfg.Screen.Height != 800 {
		t.Errorf("screen = %dx%d, want 1200x800", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Screen.PauseUnfocused {
		t.Error("an unfocused window pauses by default")
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "field:\n  max_particles: 40\npointer:\n  repulsion_radius: 80\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := cfg.FieldParams()
	if p.MaxParticles != 40 || p.RepulsionRadius != 80 {
		t.Errorf("overlay not applied: max=%d radius=%g", p.MaxParticles, p.RepulsionRadius)
	}
	if p.AreaPerParticle != 12000 || len(p.HueBands) != 2 {
		t.Errorf("unrelated defaults lost: %+v", p)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "field: [", "parsing config file"},
		{"zero area", "field:\n  area_per_particle: 0\n", "area per particle"},
		{"bad screen", "screen:\n  width: 0\n", "screen size"},
		{"bad window", "telemetry:\n  window: 0\n", "telemetry window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.MaxParticles = 7
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if again.Field.MaxParticles != 7 {
		t.Errorf("max particles = %d, want 7", again.Field.MaxParticles)
	}
}
