package config

import (
	"sort"

	"github.com/san-kum/bounce/internal/integrators"
)

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"zero-g": {
		Window:     WindowConfig{Width: DefaultWidth, Height: DefaultHeight, Title: "Bouncing Balls (zero-g)"},
		FPS:        DefaultFPS,
		Balls:      DefaultBalls,
		Gravity:    &VectorConfig{X: 0, Y: 0},
		Integrator: integrators.Default,
		Background: DefaultBackground,
	},
	"laptop": {
		Window:     WindowConfig{Width: 1280, Height: 720, Title: DefaultTitle},
		FPS:        60,
		Balls:      30,
		Integrator: integrators.Default,
		Background: "#0a0a0a",
	},
	"crowd": {
		Window:     WindowConfig{Width: 1920, Height: 1080, Title: "Bouncing Balls (crowd)"},
		FPS:        60,
		Balls:      400,
		Radius:     4,
		Integrator: integrators.Default,
		Background: DefaultBackground,
	},
	"sideways": {
		Window:     WindowConfig{Width: DefaultWidth, Height: DefaultHeight, Title: DefaultTitle},
		FPS:        DefaultFPS,
		Balls:      DefaultBalls,
		Gravity:    &VectorConfig{X: DefaultHeight / 5, Y: 0},
		Integrator: integrators.Default,
		Background: DefaultBackground,
	},
	"heavy": {
		Window:     WindowConfig{Width: DefaultWidth, Height: DefaultHeight, Title: DefaultTitle},
		FPS:        DefaultFPS,
		Balls:      DefaultBalls,
		Gravity:    &VectorConfig{X: 0, Y: DefaultHeight},
		Speed:      &SpeedRange{Min: 0, Max: 90},
		Integrator: "verlet",
		Background: "#101018",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone copies the config including the optional overrides.
func (c *Config) Clone() *Config {
	out := *c
	if c.Speed != nil {
		s := *c.Speed
		out.Speed = &s
	}
	if c.Gravity != nil {
		g := *c.Gravity
		out.Gravity = &g
	}
	return &out
}
