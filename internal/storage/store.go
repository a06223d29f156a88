package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/freefall/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"time", "position", "velocity", "acceleration"}

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
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Params      dynamo.Params      `json:"params"`
	Integrator  string             `json:"integrator"`
	Dt          float64            `json:"dt"`
	Landed      bool               `json:"landed"`
	LandingTime float64            `json:"landing_time"`
	Steps       int                `json:"steps"`
	Samples     int                `json:"samples"`
	Recoveries  int                `json:"recoveries"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save archives result under a new run id.
func (s *Store) Save(p dynamo.Params, integrator string, dt float64, result *dynamo.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	runID, runDir, err := s.newRunDir(now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   now,
		Params:      p,
		Integrator:  integrator,
		Dt:          dt,
		Landed:      result.Landed(),
		LandingTime: result.Final.Time,
		Steps:       result.StepsTaken,
		Samples:     len(result.Points),
		Recoveries:  result.Recoveries,
		Metrics:     result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteCSV(f, result.Points); err != nil {
		return "", err
	}
	return runID, f.Close()
}

// newRunDir creates a fresh directory named after now, bumping the id on a
// collision.
func (s *Store) newRunDir(now time.Time) (string, string, error) {
	for n := now.UnixNano(); ; n++ {
		runID := fmt.Sprintf("drop_%d", n)
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// List returns archived runs, oldest first. Directories without readable
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, notFound(runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]dynamo.DataPoint, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, notFound(runID, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

func notFound(runID string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", dynamo.ErrRunNotFound, runID)
	}
	return err
}

// WriteCSV writes points with a header row.
func WriteCSV(w io.Writer, points []dynamo.DataPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Time, 'f', 6, 64),
			strconv.FormatFloat(p.Position, 'f', 6, 64),
			strconv.FormatFloat(p.Velocity, 'f', 6, 64),
			strconv.FormatFloat(p.Acceleration, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of WriteCSV. Rows that do not parse are skipped.
func ReadCSV(r io.Reader) ([]dynamo.DataPoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.DataPoint{}, nil
	}

	points := make([]dynamo.DataPoint, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(trajectoryHeader) {
			continue
		}
		var vals [4]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		points = append(points, dynamo.DataPoint{
			Time:         vals[0],
			Position:     vals[1],
			Velocity:     vals[2],
			Acceleration: vals[3],
		})
	}
	return points, nil
}
