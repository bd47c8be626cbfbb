package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/bounce/internal/automation"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

// loadConfig layers defaults, preset, config file and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	var o config.Overrides
	if flags.Changed("balls") {
		o.Balls = &balls
	}
	if flags.Changed("fps") {
		o.FPS = &fps
	}
	if flags.Changed("width") {
		o.Width = &width
	}
	if flags.Changed("height") {
		o.Height = &height
	}
	if flags.Changed("seed") {
		o.Seed = &seed
	}
	if flags.Changed("integrator") {
		o.Integrator = &integrator
	}
	if flags.Changed("audio") {
		o.Audio = &audioOn
	}
	cfg.Apply(o)

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newState(cfg *config.Config, seed int64) (*sim.State, error) {
	rng := rand.New(rand.NewSource(seed))
	bodies, err := physics.SpawnBodies(rng, cfg.Spawn())
	if err != nil {
		return nil, err
	}
	return sim.NewState(bodies, cfg.GravityVector(), cfg.Bounds(), cfg.Dt())
}

// simOptions are shared by every front end.
func simOptions(cfg *config.Config) ([]sim.Option, error) {
	integ, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	opts := []sim.Option{
		sim.WithFPS(cfg.FPS),
		sim.WithIntegrator(integ),
	}
	for _, m := range metrics.Defaults() {
		opts = append(opts, sim.WithMetric(m))
	}
	return opts, nil
}

// scripted wraps p when --scenario is set.
func scripted(p sim.Presenter) (sim.Presenter, *automation.Scenario, error) {
	if scenario == "" {
		return p, nil, nil
	}
	sc, err := automation.LoadScenario(scenario)
	if err != nil {
		return nil, nil, err
	}
	s, err := automation.NewScripted(sc, p)
	if err != nil {
		return nil, nil, err
	}
	return s, sc, nil
}
