package main

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/automation"
	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/physics"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/viz"
)

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLAYOUT\tBODIES\tWORLD\tSTEPS\tG\tELASTICITY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%gx%g\t%d\t%g\t%.2f\n",
			name, p.Layout, p.Bodies.Count, p.World.Width, p.World.Height, p.Steps, p.Physics.G, p.Physics.Elasticity)
	}
	return w.Flush()
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	if benchSteps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", benchSteps)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tELAPSED\tSTEPS/SEC\tPAIRS/SEC")

	for _, n := range benchSizes {
		cfg := config.DefaultConfig().Simulation()
		cfg.N = n

		engine, err := physics.Initialize(cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < benchSteps; i++ {
			engine.Step(cfg.Dt)
		}
		elapsed := time.Since(start)

		rate := float64(benchSteps) / elapsed.Seconds()
		pairs := float64(n*(n-1)/2) * rate
		fmt.Fprintf(w, "%d\t%d\t%v\t%.1f\t%.3g\n", n, benchSteps, elapsed.Round(time.Microsecond), rate, pairs)
	}

	return w.Flush()
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(cfg.Simulation(), []int64{cfg.Seed, cfg.Seed}, nil)
	results, err := ens.Run(cmd.Context(), simConfig(cfg.Steps, cfg.Physics.Dt))
	if err != nil {
		return err
	}

	a, b := results[0], results[1]
	same := slices.Equal(a.Final, b.Final) && slices.Equal(a.Diagnostics, b.Diagnostics)
	fmt.Println(viz.MetricLine("seed", fmt.Sprintf("%d", cfg.Seed)))
	fmt.Println(viz.MetricLine("steps", fmt.Sprintf("%d", a.StepsTaken)))
	if !same {
		fmt.Println(viz.ErrorStyle.Render("trajectories differ"))
		return fmt.Errorf("non-deterministic run for seed %d", cfg.Seed)
	}
	fmt.Println(viz.StatusRunning.Render("trajectories are bit-identical"))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}
	if batch.Name != "" {
		fmt.Println(viz.Title.Render(batch.Name))
	}
	if batch.Description != "" {
		fmt.Println(viz.Subtle.Render(batch.Description))
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx := cmd.Context()
	outcomes, err := automation.RunBatch(ctx, batch, st, os.Stdout)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		fmt.Printf("\n%s", o.Name)
		if o.RunID != "" {
			fmt.Printf(" (%s)", o.RunID)
		}
		fmt.Println()
		printMetrics(o.Result.Metrics)
	}

	dir := batch.Dir()
	for _, sweep := range batch.Sweeps {
		results, err := automation.RunSweep(ctx, sweep, dir, os.Stdout)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\tKINETIC\tCONTACTS\tMOMENTUM DRIFT\n", sweep.Param)
		for _, r := range results {
			fmt.Fprintf(w, "%.4g\t%.4g\t%.0f\t%.3g\n", r.ParamValue, r.Metrics["kinetic_energy"], r.Metrics["contacts"], r.Metrics["momentum_drift"])
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	for _, grid := range batch.Grids {
		res, err := automation.RunGrid(ctx, grid, dir)
		if err != nil {
			return err
		}
		fmt.Printf("\ngrid %s: best %s=%.4g after %d runs\n", grid.Name, grid.Metric, res.Value, res.Evaluated)
		for _, axis := range grid.Axes {
			fmt.Println("  " + viz.MetricLine(axis.Param, fmt.Sprintf("%.4g", res.Best[axis.Param])))
		}
	}

	if batch.MonteCarlo != nil {
		results, err := automation.RunMonteCarlo(ctx, *batch.MonteCarlo, dir)
		if err != nil {
			return err
		}
		contained, escaped := automation.MonteCarloStats(results)
		fmt.Printf("\nmonte carlo: %d trials, %d contained, %d escaped\n", len(results), contained, escaped)
	}

	return nil
}
