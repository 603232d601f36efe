package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/sim"
)

const (
	metadataFile    = "metadata.json"
	diagnosticsFile = "diagnostics.csv"
)

var diagnosticsHeader = []string{"step", "time", "kinetic_energy", "gravity_pairs", "contacts", "resolved", "degenerate"}

// Store keeps one directory per run holding its metadata and per-step
// diagnostics. Body state is never written.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Layout     string             `json:"layout"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Bodies     int                `json:"bodies"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	StepsTaken int                `json:"steps_taken"`
	Elasticity float64            `json:"elasticity"`
	Config     *config.Config     `json:"config"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Layout, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Layout:     cfg.Layout,
		Timestamp:  now,
		Seed:       cfg.Seed,
		Bodies:     cfg.Bodies.Count,
		Dt:         cfg.Physics.Dt,
		Steps:      cfg.Steps,
		StepsTaken: result.StepsTaken,
		Elasticity: cfg.Physics.Elasticity,
		Config:     cfg,
		Metrics:    result.Metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeDiagnostics(filepath.Join(runDir, diagnosticsFile), result.Times, result.Diagnostics); err != nil {
		return "", err
	}

	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeDiagnostics(path string, times []float64, diags []dynamo.Diagnostics) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteDiagnosticsCSV(f, times, diags); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, metadataFile)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", metaPath, err)
	}

	return &meta, nil
}

// LoadDiagnostics reads the per-step series of a run.
func (s *Store) LoadDiagnostics(runID string) ([]float64, []dynamo.Diagnostics, error) {
	csvPath := filepath.Join(s.baseDir, runID, diagnosticsFile)
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", csvPath, err)
	}

	if len(records) < 2 {
		return []float64{}, []dynamo.Diagnostics{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	diags := make([]dynamo.Diagnostics, 0, len(records)-1)

	for i, record := range records[1:] {
		t, d, err := parseRow(record)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", csvPath, i+2, err)
		}
		times = append(times, t)
		diags = append(diags, d)
	}

	return times, diags, nil
}

func parseRow(record []string) (float64, dynamo.Diagnostics, error) {
	var d dynamo.Diagnostics
	if len(record) != len(diagnosticsHeader) {
		return 0, d, fmt.Errorf("expected %d fields, got %d", len(diagnosticsHeader), len(record))
	}

	t, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return 0, d, err
	}
	if d.KineticEnergy, err = strconv.ParseFloat(record[2], 64); err != nil {
		return 0, d, err
	}

	ints := []*int{&d.GravityPairs, &d.Contacts, &d.Resolved, &d.Degenerate}
	for k, dst := range ints {
		if *dst, err = strconv.Atoi(record[3+k]); err != nil {
			return 0, d, err
		}
	}
	return t, d, nil
}
