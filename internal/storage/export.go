package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

type ExportData struct {
	Metadata    *RunMetadata         `json:"metadata"`
	Steps       int                  `json:"steps"`
	Times       []float64            `json:"times"`
	Diagnostics []dynamo.Diagnostics `json:"diagnostics"`
}

// Export bundles a stored run for JSON output.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	times, diags, err := s.LoadDiagnostics(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		Metadata:    meta,
		Steps:       len(times),
		Times:       times,
		Diagnostics: diags,
	}, nil
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func ExportJSONStdout(data *ExportData) error {
	return WriteJSON(os.Stdout, data)
}

func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteDiagnosticsCSV writes one row per step.
func WriteDiagnosticsCSV(w io.Writer, times []float64, diags []dynamo.Diagnostics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(diagnosticsHeader); err != nil {
		return err
	}

	for i, d := range diags {
		t := 0.0
		if i < len(times) {
			t = times[i]
		}
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(t, 'g', -1, 64),
			strconv.FormatFloat(d.KineticEnergy, 'g', -1, 64),
			strconv.Itoa(d.GravityPairs),
			strconv.Itoa(d.Contacts),
			strconv.Itoa(d.Resolved),
			strconv.Itoa(d.Degenerate),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
