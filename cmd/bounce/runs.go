package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/export"
	"github.com/san-kum/bounce/internal/storage"
)

var (
	plotBody    int
	outPath     string
	svgScale    float64
	svgTail     int
	svgEnergy   bool
	svgBgColor  string
	writeConfig string
)

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tBALLS\tFRAMES\tDURATION\tINTEG\tKE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.2fs\t%s\t%.4g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Bodies,
			run.Frames,
			run.Duration,
			run.Integrator,
			run.Metrics["kinetic_energy"],
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", meta.ID)
	fmt.Fprintf(w, "recorded\t%s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "seed\t%d\n", meta.Seed)
	fmt.Fprintf(w, "window\t%.0fx%.0f\n", meta.Width, meta.Height)
	fmt.Fprintf(w, "balls\t%d (r=%.1f)\n", meta.Bodies, meta.Radius)
	fmt.Fprintf(w, "fps\t%d (dt=%.4fs)\n", meta.FPS, meta.Dt)
	fmt.Fprintf(w, "frames\t%d (%.2fs)\n", meta.Frames, meta.Duration)
	fmt.Fprintf(w, "integrator\t%s\n", meta.Integrator)
	if meta.Scenario != "" {
		fmt.Fprintf(w, "scenario\t%s\n", meta.Scenario)
	}

	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, meta.Metrics[name])
	}
	return w.Flush()
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and one ball's path",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().IntVar(&plotBody, "body", 0, "ball index to plot")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("run %s has too few frames to plot", meta.ID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(frames))

	fmt.Println(asciigraph.Plot(storage.Energies(frames),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy")))
	fmt.Println()

	if plotBody < 0 || plotBody >= meta.Bodies {
		return fmt.Errorf("--body %d out of range [0, %d)", plotBody, meta.Bodies)
	}
	path := storage.Trajectory(frames, plotBody)
	xs := make([]float64, len(path))
	ys := make([]float64, len(path))
	for i, p := range path {
		xs[i] = p.X
		// screen y grows downward
		ys[i] = meta.Height - p.Y
	}
	fmt.Println(asciigraph.PlotMany([][]float64{xs, ys},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.SeriesLegends("x", "height"),
		asciigraph.Caption(fmt.Sprintf("ball %d", plotBody))))
	return nil
}

func newExportSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a recorded run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	defaults := export.DefaultOptions()
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&svgScale, "scale", defaults.Scale, "svg units per pixel")
	cmd.Flags().IntVar(&svgTail, "tail", 0, "only the last N frames of each path")
	cmd.Flags().StringVar(&svgBgColor, "background", defaults.Background, "background color")
	cmd.Flags().BoolVar(&svgEnergy, "energy", false, "plot kinetic energy instead of paths")
	return cmd
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}

	var svg string
	if svgEnergy {
		svg = export.SeriesToSVG(storage.Energies(frames), 800, 300, "#00ff88")
	} else {
		svg = export.RunToSVG(*meta, frames, export.Options{Scale: svgScale, Background: svgBgColor, Tail: svgTail})
	}
	if svg == "" {
		return fmt.Errorf("run %s has nothing to draw", meta.ID)
	}
	return writeOut(func(w io.Writer) error {
		_, err := io.WriteString(w, svg+"\n")
		return err
	})
}

func newExportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			return writeOut(func(w io.Writer) error { return st.ExportJSON(w, args[0]) })
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

// writeOut sends output to --out or stdout.
func writeOut(write func(io.Writer) error) error {
	if outPath == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("written", "path", outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tWINDOW\tFPS\tBALLS\tGRAVITY\tINTEG")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		g := p.GravityVector()
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t(%.0f, %.0f)\t%s\n",
			name, p.Window.Width, p.Window.Height, p.FPS, p.Balls, g.X, g.Y, p.Integrator)
	}
	return w.Flush()
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if writeConfig != "" {
				if err := config.Save(writeConfig, cfg); err != nil {
					return err
				}
				logger.Info("config saved", "path", writeConfig)
				return nil
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&writeConfig, "write", "", "save to this path instead of printing")
	return cmd
}
