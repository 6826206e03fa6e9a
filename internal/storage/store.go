package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/turbsynth/internal/config"
	"github.com/san-kum/turbsynth/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	spectrumFile = "spectrum.csv"
	fieldFile    = "field.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Config    config.Config      `json:"config"`
	Bins      int                `json:"bins"`
	MaxK      float64            `json:"max_k"`
	AnchorK   float64            `json:"anchor_k"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Metrics   map[string]float64 `json:"metrics"`
}

// SpectrumRow is one line of spectrum.csv. Reference is NaN for bins the
// reference line does not cover.
type SpectrumRow struct {
	Low, High, Center float64
	Energy            float64
	Modes             int
	Reference         float64
}

func (s *Store) Save(cfg config.Config, res *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("n%d_s%d_%d", cfg.Grid.N, cfg.Seed, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Config:    cfg,
		Bins:      len(res.Spectrum.Bins),
		MaxK:      res.Grid.MaxK(),
		Elapsed:   res.Elapsed,
		Metrics:   finite(res.Metrics),
	}
	if res.Reference != nil {
		meta.AnchorK = res.Reference.AnchorK
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSpectrum(filepath.Join(runDir, spectrumFile), SpectrumRows(res)); err != nil {
		return "", err
	}
	if err := writeField(filepath.Join(runDir, fieldFile), res); err != nil {
		return "", err
	}

	return runID, nil
}

// SpectrumRows pairs each bin with its reference value.
func SpectrumRows(res *experiment.Result) []SpectrumRow {
	rows := make([]SpectrumRow, len(res.Spectrum.Bins))
	ref := 0
	for i, b := range res.Spectrum.Bins {
		rows[i] = SpectrumRow{
			Low:       b.Low,
			High:      b.High,
			Center:    b.Center,
			Energy:    b.Energy,
			Modes:     b.Modes,
			Reference: math.NaN(),
		}
		if res.Reference != nil && b.Center > 0 && ref < len(res.Reference.Values) {
			rows[i].Reference = res.Reference.Values[ref]
			ref++
		}
	}
	return rows
}

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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSpectrum(runID string) ([]SpectrumRow, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, spectrumFile))
	if err != nil {
		return nil, err
	}

	rows := make([]SpectrumRow, 0, len(records))
	for _, rec := range records {
		if len(rec) < 6 {
			continue
		}
		vals, err := parseFloats(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, SpectrumRow{
			Low:       vals[0],
			High:      vals[1],
			Center:    vals[2],
			Energy:    vals[3],
			Modes:     int(vals[4]),
			Reference: vals[5],
		})
	}
	return rows, nil
}

// LoadField returns the physical velocity components as N×N grids.
func (s *Store) LoadField(runID string) (ux, uy [][]float64, err error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	records, err := readCSV(filepath.Join(s.baseDir, runID, fieldFile))
	if err != nil {
		return nil, nil, err
	}

	n := meta.Config.Grid.N
	if len(records) != n*n {
		return nil, nil, fmt.Errorf("field has %d samples, want %d", len(records), n*n)
	}

	ux = make([][]float64, n)
	uy = make([][]float64, n)
	for r := 0; r < n; r++ {
		ux[r] = make([]float64, n)
		uy[r] = make([]float64, n)
	}
	for i, rec := range records {
		if len(rec) < 4 {
			return nil, nil, fmt.Errorf("field row %d: expected 4 columns, got %d", i, len(rec))
		}
		vals, err := parseFloats(rec)
		if err != nil {
			return nil, nil, err
		}
		ux[i/n][i%n] = vals[2]
		uy[i/n][i%n] = vals[3]
	}
	return ux, uy, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSpectrum(path string, rows []SpectrumRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"k_low", "k_high", "k_center", "energy", "modes", "reference"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			formatFloat(r.Low),
			formatFloat(r.High),
			formatFloat(r.Center),
			formatFloat(r.Energy),
			strconv.Itoa(r.Modes),
			formatFloat(r.Reference),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeField(path string, res *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "ux", "uy"}); err != nil {
		return err
	}
	g := res.Grid
	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			rec := []string{
				formatFloat(g.X[c]),
				formatFloat(g.X[r]),
				formatFloat(res.Field.Ux[r][c]),
				formatFloat(res.Field.Uy[r][c]),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// readCSV returns all records after the header line.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func parseFloats(rec []string) ([]float64, error) {
	vals := make([]float64, len(rec))
	for i, s := range rec {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// finite drops values JSON cannot encode.
func finite(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}
