package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/export"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/viz"
)

var seriesFields = map[string]func(dynamo.Diagnostics) float64{
	"kinetic":  func(d dynamo.Diagnostics) float64 { return d.KineticEnergy },
	"contacts": func(d dynamo.Diagnostics) float64 { return float64(d.Contacts) },
	"resolved": func(d dynamo.Diagnostics) float64 { return float64(d.Resolved) },
	"gravity":  func(d dynamo.Diagnostics) float64 { return float64(d.GravityPairs) },
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAYOUT\tTIME\tBODIES\tSTEPS\tDT\tSEED\tELASTICITY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d/%d\t%g\t%d\t%.2f\n",
			run.ID,
			run.Layout,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.StepsTaken,
			run.Steps,
			run.Dt,
			run.Seed,
			run.Elasticity,
		)
	}

	return w.Flush()
}

func loadSeries(st *storage.Store, runID, name string) ([]float64, error) {
	field, ok := seriesFields[name]
	if !ok {
		return nil, fmt.Errorf("unknown series: %s", name)
	}
	_, diags, err := st.LoadDiagnostics(runID)
	if err != nil {
		return nil, err
	}
	if len(diags) == 0 {
		return nil, fmt.Errorf("no data to plot")
	}
	out := make([]float64, len(diags))
	for i, d := range diags {
		out[i] = field(d)
	}
	return out, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("layout: %s, bodies: %d, seed: %d\n\n", meta.Layout, meta.Bodies, meta.Seed)

	for _, p := range []struct{ series, caption string }{
		{"kinetic", "kinetic energy vs step"},
		{"contacts", "contacts vs step"},
	} {
		data, err := loadSeries(st, runID, p.series)
		if err != nil {
			return err
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println(viz.Subtle.Render(summarize(data)))
		fmt.Println()
	}

	return nil
}

func summarize(data []float64) string {
	mean, std := stat.MeanStdDev(data, nil)
	return fmt.Sprintf("min %.4g  max %.4g  mean %.4g  std %.4g", floats.Min(data), floats.Max(data), mean, std)
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	data, err := storage.New(dataDir).Export(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.ExportJSONStdout(data)
	}
	if err := storage.ExportJSON(outFile, data); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	times, diags, err := storage.New(dataDir).LoadDiagnostics(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.WriteDiagnosticsCSV(os.Stdout, times, diags)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := storage.WriteDiagnosticsCSV(f, times, diags); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	data, err := loadSeries(storage.New(dataDir), runID, series)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = fmt.Sprintf("%s_%s.svg", runID, series)
	}
	svg := export.SeriesToSVG(data, 800, 300, "#00ccff", fmt.Sprintf("%s %s", runID, series))
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}
