package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/freefall/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Trajectory []dynamo.DataPoint `json:"trajectory"`
}

// ExportJSON writes the metadata and trajectory of an archived run.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	points, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Trajectory: points})
}
