package main

import (
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	balls      int
	fps        int
	width      int
	height     int
	seed       int64
	integrator string
	audioOn    bool
	logLevel   string
	scenario   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.TimeOnly,
	Prefix:          "bounce",
})

// raylib must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "bounce",
		Short:         "bouncing balls under gravity",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(lvl)
			return nil
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".bounce", "data directory for recorded runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.IntVar(&balls, "balls", 0, "number of balls")
	pf.IntVar(&fps, "fps", 0, "frames per second")
	pf.IntVar(&width, "width", 0, "window width in pixels")
	pf.IntVar(&height, "height", 0, "window height in pixels")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.StringVar(&integrator, "integrator", "", "integrator (semi-implicit, euler, verlet)")
	pf.BoolVar(&audioOn, "audio", false, "sonify energy and bounces")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&scenario, "scenario", "", "replay scripted input (yaml)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&scenario, "scenario", "", "replay scripted input (yaml)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&scenario, "scenario", "", "replay scripted input (yaml)")

	rootCmd.AddCommand(
		guiCmd,
		tuiCmd,
		newRunCmd(),
		newCompareCmd(),
		&cobra.Command{
			Use:   "list",
			Short: "list recorded runs",
			Args:  cobra.NoArgs,
			RunE:  listRuns,
		},
		&cobra.Command{
			Use:   "show [run_id]",
			Short: "show run metadata and metrics",
			Args:  cobra.ExactArgs(1),
			RunE:  showRun,
		},
		newPlotCmd(),
		newExportSVGCmd(),
		newExportJSONCmd(),
		&cobra.Command{
			Use:   "presets",
			Short: "list presets",
			Args:  cobra.NoArgs,
			RunE:  listPresets,
		},
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("bounce failed", "err", err)
		os.Exit(1)
	}
}
