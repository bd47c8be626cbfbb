package main

import (
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/bounce/internal/audio"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/gui"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/viz"
)

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	state, err := newState(cfg, cfg.Seed)
	if err != nil {
		return err
	}

	win, err := gui.Open(cfg, logger)
	if err != nil {
		logger.Error("graphics init failed", "err", err)
		return err
	}
	defer win.Close()

	opts, err := simOptions(cfg)
	if err != nil {
		return err
	}
	opts = append(opts, sim.WithLogger(logger))
	if proc := startAudio(cfg, logger); proc != nil {
		defer proc.Stop()
		win.AttachAudio(proc)
		opts = append(opts, sim.WithObserver(proc))
	}

	presenter, _, err := scripted(win)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("window ready", "seed", cfg.Seed, "balls", cfg.Balls, "preset", preset)
	res, err := sim.New(state, presenter, opts...).Run(ctx)
	logResult(res)
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	state, err := newState(cfg, cfg.Seed)
	if err != nil {
		return err
	}

	opts, err := simOptions(cfg)
	if err != nil {
		return err
	}

	// The terminal belongs to Bubble Tea until it exits.
	quiet := log.New(io.Discard)
	m := viz.NewModel(cfg.FPS)
	opts = append(opts, sim.WithLogger(quiet), sim.WithObserver(m))
	if proc := startAudio(cfg, quiet); proc != nil {
		defer proc.Stop()
		opts = append(opts, sim.WithObserver(proc))
	}

	presenter, _, err := scripted(m)
	if err != nil {
		return err
	}
	s := sim.New(state, presenter, opts...)
	m.Attach(s)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := viz.Run(ctx, m); err != nil {
		return err
	}
	logger.Info("tui closed", "frames", s.Frame(), "sim_time", s.Time())
	return nil
}

// startAudio returns nil when audio is off or the device cannot be opened.
func startAudio(cfg *config.Config, l *log.Logger) *audio.Processor {
	if !cfg.Audio {
		return nil
	}
	proc := audio.NewProcessor(l)
	if err := proc.Start(); err != nil {
		logger.Warn("audio unavailable", "err", err)
		return nil
	}
	return proc
}

func logResult(res *sim.Result) {
	if res == nil {
		return
	}
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	kv := []any{"frames", res.Frames, "sim_time", res.SimTime, "terminated", res.Terminated}
	for _, name := range names {
		kv = append(kv, name, res.Metrics[name])
	}
	logger.Info("simulation finished", kv...)
}
