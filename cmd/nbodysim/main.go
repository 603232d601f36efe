package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/config"
)

var (
	dataDir    string
	configFile string
	seed       int64
	numBodies  int
	steps      int
	dt         float64
	layout     string
	elasticity float64
	noSave     bool
	outFile    string
	series     string
	benchSizes []int
	benchSteps int
	svgScale   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nbodysim",
		Short: "2D gravitational n-body simulator with inelastic collisions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			if dataDir == "" {
				dataDir = config.DataDir()
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default $NBODYSIM_DATA or .nbodysim)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a headless simulation and save its diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	renderCmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "run headless and write the final frame as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrame,
	}
	addSimFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "frame.svg", "output file")
	renderCmd.Flags().Float64Var(&svgScale, "scale", 4, "svg units per sub-pixel")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot kinetic energy and contacts of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export metadata and diagnostics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export diagnostics as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a diagnostic series as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>_<series>.svg)")
	exportSVGCmd.Flags().StringVar(&series, "series", "kinetic", "series to plot: kinetic, contacts, resolved, gravity")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure steps per second for several body counts",
		RunE:  runBenchmark,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{100, 250, 500, 1000}, "body counts")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 20, "steps per size")

	verifyCmd := &cobra.Command{
		Use:   "verify [preset]",
		Short: "run one seed twice concurrently and compare the trajectories",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVerify,
	}
	addSimFlags(verifyCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [file.yaml]",
		Short: "run the experiments described in a batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(runCmd, liveCmd, renderCmd, listCmd, plotCmd, exportCmd, exportJSONCmd,
		exportCSVCmd, exportSVGCmd, presetsCmd, benchCmd, verifyCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "scenario seed")
	cmd.Flags().IntVar(&numBodies, "bodies", 0, "number of bodies")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of steps")
	cmd.Flags().Float64Var(&dt, "dt", 0, "time step")
	cmd.Flags().StringVar(&layout, "layout", "", "initial layout: uniform or collision")
	cmd.Flags().Float64Var(&elasticity, "elasticity", 0, "coefficient of restitution in [0,1]")
}

// resolveConfig layers defaults, preset, config file, environment and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadInto(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("bodies") {
		cfg.Bodies.Count = numBodies
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("dt") {
		cfg.Physics.Dt = dt
	}
	if flags.Changed("layout") {
		cfg.Layout = layout
	}
	if flags.Changed("elasticity") {
		cfg.Physics.Elasticity = elasticity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
