package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
	framesFile   = "frames.msgpack"
)

var seriesHeader = []string{"tick", "collisions", "walls", "pairs", "kinetic_energy", "px", "py"}

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
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Particles  int                `json:"particles"`
	Steps      int                `json:"steps"`
	Resolver   string             `json:"resolver"`
	Separation string             `json:"separation"`
	Collisions int64              `json:"collisions"`
	Walls      int64              `json:"walls"`
	Pairs      int64              `json:"pairs"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the metadata, a CSV series with one
// row per recorded frame, and the frames themselves as msgpack.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.Name == "" {
		meta.Name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Collisions = result.Collisions
	meta.Walls = result.Walls
	meta.Pairs = result.Pairs
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result.Frames); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", err
	}

	return runID, nil
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

func writeSeries(path string, frames []dynamo.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(seriesHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		px, py := fr.Momentum()
		row := []string{
			strconv.FormatInt(fr.Tick, 10),
			strconv.FormatInt(fr.Collisions, 10),
			strconv.FormatInt(fr.Walls, 10),
			strconv.FormatInt(fr.Pairs, 10),
			strconv.FormatFloat(fr.KineticEnergy(), 'f', 6, 64),
			strconv.FormatFloat(px, 'f', 6, 64),
			strconv.FormatFloat(py, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeFrames(path string, frames []dynamo.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return msgpack.NewEncoder(f).Encode(frames)
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
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Series is the per-frame CSV data of a run, one slice per column.
type Series struct {
	Ticks         []int64
	Collisions    []float64
	Walls         []float64
	Pairs         []float64
	KineticEnergy []float64
	MomentumX     []float64
	MomentumY     []float64
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
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

	out := &Series{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < len(seriesHeader) {
			continue
		}

		tick, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			continue
		}
		vals := make([]float64, len(seriesHeader)-1)
		ok := true
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(record[j+1], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		out.Ticks = append(out.Ticks, tick)
		out.Collisions = append(out.Collisions, vals[0])
		out.Walls = append(out.Walls, vals[1])
		out.Pairs = append(out.Pairs, vals[2])
		out.KineticEnergy = append(out.KineticEnergy, vals[3])
		out.MomentumX = append(out.MomentumX, vals[4])
		out.MomentumY = append(out.MomentumY, vals[5])
	}

	return out, nil
}

func (s *Store) LoadFrames(runID string) ([]dynamo.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var frames []dynamo.Frame
	if err := msgpack.NewDecoder(file).Decode(&frames); err != nil {
		return nil, err
	}
	return frames, nil
}

type ExportData struct {
	Metadata RunMetadata    `json:"metadata"`
	Frames   []dynamo.Frame `json:"frames"`
}

// ExportJSON writes a run's metadata and frames as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Metadata: *meta, Frames: frames})
}
