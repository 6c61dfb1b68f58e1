package field

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(p *Params)
		want   string
	}{
		{"zero area", func(p *Params) { p.AreaPerParticle = 0 }, "area per particle"},
		{"negative max", func(p *Params) { p.MaxParticles = -1 }, "max particles"},
		{"inverted size", func(p *Params) { p.SizeMin = 3 }, "size range"},
		{"opacity above one", func(p *Params) { p.OpacityMax = 1.5 }, "opacity range"},
		{"saturation above one", func(p *Params) { p.Saturation = 1.2 }, "saturation"},
		{"negative lightness", func(p *Params) { p.Lightness = -0.1 }, "lightness"},
		{"no hue bands", func(p *Params) { p.HueBands = nil }, "hue band"},
		{"inverted hue band", func(p *Params) { p.HueBands = []HueBand{{Min: 300, Max: 200}} }, "hue band 0"},
		{"negative radius", func(p *Params) { p.RepulsionRadius = -1 }, "repulsion radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
