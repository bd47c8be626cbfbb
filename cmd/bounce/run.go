package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/bounce/internal/automation"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/storage"
)

var (
	frames   int
	save     bool
	every    int
	numRuns  int
	validate bool
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 300, "frames to simulate")
	runCmd.Flags().BoolVar(&save, "save", false, "record the run under --data")
	runCmd.Flags().IntVar(&every, "every", 1, "record every Nth frame")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "independent runs with consecutive seeds")
	runCmd.Flags().BoolVar(&validate, "validate", true, "fail on NaN or Inf state")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "scripted input (yaml)")
	return runCmd
}

type headlessRun struct {
	seed     int64
	state    *sim.State
	recorder *storage.Recorder
	colors   []string
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", numRuns)
	}

	var sc *automation.Scenario
	if scenario != "" {
		if sc, err = automation.LoadScenario(scenario); err != nil {
			return err
		}
		if sc.Frames > 0 && !cmd.Flags().Changed("frames") {
			frames = sc.Frames
		}
	}

	runs := make([]*headlessRun, numRuns)
	factory := func(s int64) (*sim.Simulator, error) {
		state, err := newState(cfg, s)
		if err != nil {
			return nil, err
		}
		opts, err := simOptions(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sim.WithMaxFrames(frames), sim.WithValidation(validate))
		if numRuns == 1 {
			opts = append(opts, sim.WithLogger(logger))
		}

		run := &headlessRun{seed: s, state: state}
		for _, b := range state.Bodies {
			run.colors = append(run.colors, physics.Hex(b.Color))
		}
		if save {
			run.recorder = storage.NewRecorder(every)
			opts = append(opts, sim.WithObserver(run.recorder))
		}
		runs[s-cfg.Seed] = run

		var presenter sim.Presenter
		if sc != nil {
			if presenter, err = automation.NewScripted(sc, nil); err != nil {
				return nil, err
			}
		}
		return sim.New(state, presenter, opts...), nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := sim.NewEnsemble(factory, numRuns, cfg.Seed).Run(ctx)
	if err != nil {
		return err
	}
	logger.Debug("headless runs done", "runs", numRuns, "elapsed", time.Since(start))

	printResults(runs, results)

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for i, res := range results {
		meta := runMetadata(cfg, runs[i], res)
		if sc != nil {
			meta.Scenario = sc.Name
		}
		id, err := st.Save(meta, runs[i].recorder.Frames())
		if err != nil {
			return fmt.Errorf("save run %d: %w", i, err)
		}
		logger.Info("run saved", "id", id, "frames", len(runs[i].recorder.Frames()))
	}
	return nil
}

func runMetadata(cfg *config.Config, run *headlessRun, res *sim.Result) storage.RunMetadata {
	return storage.RunMetadata{
		Seed:       run.seed,
		Bodies:     len(run.state.Bodies),
		Width:      cfg.Bounds().Width,
		Height:     cfg.Bounds().Height,
		FPS:        cfg.FPS,
		Dt:         cfg.Dt(),
		Frames:     res.Frames,
		Duration:   res.SimTime,
		Integrator: cfg.Integrator,
		Radius:     cfg.BallRadius(),
		Colors:     run.colors,
		Metrics:    res.Metrics,
	}
}

func metricNames(res *sim.Result) []string {
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printResults(runs []*headlessRun, results []*sim.Result) {
	if len(results) == 0 {
		return
	}
	names := metricNames(results[0])

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\tFRAMES\tSIM_TIME\tEXIT\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for i, res := range results {
		exit := "limit"
		if res.Terminated {
			exit = "quit"
		}
		fmt.Fprintf(w, "%d\t%d\t%.2fs\t%s", runs[i].seed, res.Frames, res.SimTime, exit)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4g", res.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "run the same seed under several integrators",
		RunE:  compareIntegrators,
	}
	cmd.Flags().IntVar(&frames, "frames", 300, "frames to simulate")
	return cmd
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = integrators.Names()
	}

	fmt.Printf("comparing integrators (seed=%d, balls=%d, frames=%d)\n\n", cfg.Seed, cfg.Balls, frames)
	fmt.Printf("%-14s  %-14s  %-12s  %-12s  %-10s\n", "integrator", "kinetic_mean", "reflections", "containment", "time_ms")
	fmt.Println(strings.Repeat("-", 70))

	for _, name := range args {
		integ, err := integrators.Get(name)
		if err != nil {
			fmt.Printf("%-14s  error: %v\n", name, err)
			continue
		}
		state, err := newState(cfg, cfg.Seed)
		if err != nil {
			return err
		}

		opts := []sim.Option{sim.WithIntegrator(integ), sim.WithMaxFrames(frames), sim.WithValidation(true)}
		for _, m := range metrics.Defaults() {
			opts = append(opts, sim.WithMetric(m))
		}

		start := time.Now()
		res, err := sim.New(state, nil, opts...).Run(cmd.Context())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-14s  error: %v\n", name, err)
			continue
		}

		fmt.Printf("%-14s  %14.4g  %12.0f  %12.3f  %10.2f\n",
			name,
			res.Metrics["kinetic_energy"],
			res.Metrics["reflections"],
			res.Metrics["containment"],
			float64(elapsed.Microseconds())/1000)
	}
	return nil
}
