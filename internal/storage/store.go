package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/farm"
)

const (
	metadataFile = "metadata.json"
	resultsFile  = "results.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID           string             `json:"id"`
	Module       string             `json:"module"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	XRes         int                `json:"xres"`
	YRes         int                `json:"yres"`
	OutputLength int                `json:"output_length"`
	Elapsed      float64            `json:"elapsed_seconds"`
	Config       config.Config      `json:"config"`
	Summary      map[string]float64 `json:"summary"`
}

// Save writes one run directory, <module>_<short uuid>, holding the
// metadata and one CSV row per task.
func (s *Store) Save(cfg *config.Config, board *farm.Board, elapsed time.Duration, summary map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%s", board.Module, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	meta := RunMetadata{
		ID:           runID,
		Module:       board.Module,
		Timestamp:    time.Now(),
		Seed:         cfg.Seed,
		XRes:         board.XRes,
		YRes:         board.YRes,
		OutputLength: board.Width,
		Elapsed:      elapsed.Seconds(),
		Config:       *cfg,
		Summary:      finiteOnly(summary),
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		return "", err
	}
	if err := writeResults(filepath.Join(runDir, resultsFile), board); err != nil {
		return "", err
	}

	return runID, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeResults(path string, board *farm.Board) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"task", "x", "y"}
	for i := 0; i < board.Width; i++ {
		header = append(header, fmt.Sprintf("o%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for id, cell := range board.Cells {
		row := []string{
			strconv.Itoa(id),
			strconv.Itoa(id % board.XRes),
			strconv.Itoa(id / board.XRes),
		}
		for _, v := range cell {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadBoard rebuilds the board of a saved run from its CSV rows.
func (s *Store) LoadBoard(runID string) (*farm.Board, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, resultsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3 + meta.OutputLength

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", runID, err)
	}

	board := farm.NewBoard(meta.Module, meta.XRes, meta.YRes, meta.OutputLength)
	for i, record := range records {
		if i == 0 {
			continue
		}

		id, err := strconv.Atoi(record[0])
		if err != nil || id < 0 || id >= board.Len() {
			return nil, fmt.Errorf("results %s line %d: bad task id %q", runID, i+1, record[0])
		}

		row := make([]float64, meta.OutputLength)
		for j := range row {
			row[j], err = strconv.ParseFloat(record[3+j], 64)
			if err != nil {
				return nil, fmt.Errorf("results %s line %d: %w", runID, i+1, err)
			}
		}
		board.Cells[id] = row
	}

	return board, nil
}

// finiteOnly drops NaN and Inf entries, which encoding/json rejects.
func finiteOnly(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}
