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

	"github.com/san-kum/gravsurf/internal/engine"
	"github.com/san-kum/gravsurf/internal/export"
	"github.com/san-kum/gravsurf/internal/geom"
)

// Store persists animated runs, one directory per run:
// metadata.json for parameters and metrics, frames.csv for per-frame
// statistics, and mesh.obj for the final extracted surface.
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
	GridSize   int                `json:"grid_size"`
	MassRatio  float64            `json:"mass_ratio"`
	Separation float64            `json:"separation"`
	Isolevel   float64            `json:"isolevel"`
	Omega      float64            `json:"omega"`
	Dt         float64            `json:"dt"`
	Frames     int                `json:"frames"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(gridSize int, params engine.Params, cfg engine.Config, result *engine.Result, mesh *geom.Mesh) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		GridSize:   gridSize,
		MassRatio:  params.MassRatio,
		Separation: params.Separation,
		Isolevel:   params.Isolevel,
		Omega:      params.Omega,
		Dt:         cfg.Dt,
		Frames:     result.FramesDone,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeFrames(filepath.Join(runDir, "frames.csv"), result); err != nil {
		return "", err
	}

	if mesh != nil {
		if err := export.SaveOBJ(filepath.Join(runDir, "mesh.obj"), mesh); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func (s *Store) writeFrames(path string, result *engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"frame", "time", "triangles"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.Itoa(result.Triangles[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

// Load reads one run's metadata by id.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
