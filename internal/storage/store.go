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

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/vec"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
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
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Bodies     int                `json:"bodies"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	FPS        int                `json:"fps"`
	Dt         float64            `json:"dt"`
	Frames     int                `json:"frames"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Scenario   string             `json:"scenario,omitempty"`
	Radius     float64            `json:"radius"`
	Colors     []string           `json:"colors"`
	Metrics    map[string]float64 `json:"metrics"`
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Time      float64
	Gravity   vec.Vector
	Energy    float64
	Positions []vec.Vector
}

// Save writes a run directory and returns its id. meta.ID and
// meta.Timestamp are filled in when empty.
func (s *Store) Save(meta RunMetadata, frames []FrameRecord) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("run_%s_s%d", meta.Timestamp.Format("20060102-150405.000"), meta.Seed)
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeFrames(filepath.Join(runDir, framesFile), meta.Bodies, frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeFrames(path string, bodies int, frames []FrameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"time", "gx", "gy", "energy"}
	for i := 0; i < bodies; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, fr := range frames {
		if len(fr.Positions) != bodies {
			return dynamo.Invalid("frame %d has %d positions, want %d", i, len(fr.Positions), bodies)
		}
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(fr.Time), formatFloat(fr.Gravity.X), formatFloat(fr.Gravity.Y), formatFloat(fr.Energy))
		for _, p := range fr.Positions {
			row = append(row, formatFloat(p.X), formatFloat(p.Y))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first.
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
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownRun, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}
		if len(vals) < 4 || (len(vals)-4)%2 != 0 {
			return nil, fmt.Errorf("run %s row %d: malformed row with %d fields", runID, i+1, len(vals))
		}

		fr := FrameRecord{
			Time:      vals[0],
			Gravity:   vec.New(vals[1], vals[2]),
			Energy:    vals[3],
			Positions: make([]vec.Vector, 0, (len(vals)-4)/2),
		}
		for j := 4; j < len(vals); j += 2 {
			fr.Positions = append(fr.Positions, vec.New(vals[j], vals[j+1]))
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

// Trajectory returns the recorded path of one body.
func Trajectory(frames []FrameRecord, body int) []vec.Vector {
	path := make([]vec.Vector, 0, len(frames))
	for _, fr := range frames {
		if body < len(fr.Positions) {
			path = append(path, fr.Positions[body])
		}
	}
	return path
}

// Energies returns the recorded kinetic energy series.
func Energies(frames []FrameRecord) []float64 {
	out := make([]float64, len(frames))
	for i, fr := range frames {
		out[i] = fr.Energy
	}
	return out
}
