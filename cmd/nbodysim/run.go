package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/experiment"
	"github.com/san-kum/nbodysim/internal/export"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/viz"
)

// progress redraws a bar on one terminal line.
type progress struct {
	out   io.Writer
	total int
	every int
	done  int
}

func newProgress(out io.Writer, total int) *progress {
	every := total / 50
	if every < 1 {
		every = 1
	}
	return &progress{out: out, total: total, every: every}
}

func (p *progress) OnStep(bodies []dynamo.Body, d dynamo.Diagnostics, t float64) {
	p.done++
	if p.done%p.every != 0 && p.done != p.total {
		return
	}
	frac := float64(p.done) / float64(p.total)
	fmt.Fprintf(p.out, "\r%s %3.0f%%  contacts %-6d", viz.ProgressBar(frac, 30), frac*100, d.Contacts)
	if p.done == p.total {
		fmt.Fprintln(p.out)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(nil); err != nil {
		return err
	}
	exp.GetSimulator().AddObserver(newProgress(os.Stderr, cfg.Steps))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println(viz.Title.Render(fmt.Sprintf("running %d bodies, %s layout, seed %d", cfg.Bodies.Count, cfg.Layout, cfg.Seed)))
	start := time.Now()

	result, runErr := exp.Run(ctx)
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	if runErr != nil {
		fmt.Println(viz.ErrorStyle.Render(fmt.Sprintf("stopped after %d steps: %v", result.StepsTaken, runErr)))
	}

	fmt.Println(viz.MetricLine("completed in", elapsed.Round(time.Millisecond).String()))
	fmt.Println(viz.MetricLine("steps", fmt.Sprintf("%d", result.StepsTaken)))
	if elapsed > 0 {
		fmt.Println(viz.MetricLine("steps/sec", fmt.Sprintf("%.1f", float64(result.StepsTaken)/elapsed.Seconds())))
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Println(viz.MetricLine("run id", runID))
	}

	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println("  " + viz.MetricLine(name, fmt.Sprintf("%.6g", metrics[name])))
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg.Simulation())
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup([]dynamo.Metric{}); err != nil {
		return err
	}
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(160, 80)
	pw, ph := canvas.Pixels()
	cam := viz.NewCamera(cfg.World.Width, cfg.World.Height, cfg.Bodies.Radius, pw, ph)
	cam.Draw(canvas, result.Final)

	if err := os.WriteFile(outFile, []byte(export.CanvasToSVG(canvas, svgScale)), 0644); err != nil {
		return err
	}
	fmt.Printf("frame after %d steps written to %s\n", result.StepsTaken, outFile)
	return nil
}

var _ dynamo.Observer = (*progress)(nil)

func simConfig(steps int, dt float64) sim.Config {
	return sim.Config{Steps: steps, Dt: dt, ValidateState: true}
}
