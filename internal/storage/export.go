package storage

import (
	"encoding/json"
	"io"
	"math"
)

type ExportData struct {
	Run      RunMetadata   `json:"run"`
	Spectrum []ExportedBin `json:"spectrum"`
}

type ExportedBin struct {
	Low       float64  `json:"k_low"`
	High      float64  `json:"k_high"`
	Center    float64  `json:"k_center"`
	Energy    float64  `json:"energy"`
	Modes     int      `json:"modes"`
	Reference *float64 `json:"reference,omitempty"`
}

// ExportJSON writes a run's metadata and spectrum as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, rows []SpectrumRow) error {
	data := ExportData{
		Run:      *meta,
		Spectrum: make([]ExportedBin, len(rows)),
	}
	for i, r := range rows {
		data.Spectrum[i] = ExportedBin{
			Low:    r.Low,
			High:   r.High,
			Center: r.Center,
			Energy: r.Energy,
			Modes:  r.Modes,
		}
		if !math.IsNaN(r.Reference) {
			ref := r.Reference
			data.Spectrum[i].Reference = &ref
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
