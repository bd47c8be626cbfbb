package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Meta   RunMetadata   `json:"meta"`
	Frames []ExportFrame `json:"frames"`
}

type ExportFrame struct {
	Time      float64      `json:"time"`
	Gravity   [2]float64   `json:"gravity"`
	Energy    float64      `json:"energy"`
	Positions [][2]float64 `json:"positions"`
}

// ExportJSON writes a stored run as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	data := ExportData{Meta: *meta, Frames: make([]ExportFrame, len(frames))}
	for i, fr := range frames {
		ef := ExportFrame{
			Time:      fr.Time,
			Gravity:   [2]float64{fr.Gravity.X, fr.Gravity.Y},
			Energy:    fr.Energy,
			Positions: make([][2]float64, len(fr.Positions)),
		}
		for j, p := range fr.Positions {
			ef.Positions[j] = [2]float64{p.X, p.Y}
		}
		data.Frames[i] = ef
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
