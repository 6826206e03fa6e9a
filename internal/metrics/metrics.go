package metrics

import (
	"sort"

	"github.com/san-kum/turbsynth/internal/spectral"
)

// Sample is one realization as seen by the metrics: the projected spectral
// field, its physical counterpart and the estimated spectrum.
type Sample struct {
	Grid     *spectral.Grid
	Ux, Uy   [][]complex128
	Field    *spectral.Field
	Spectrum *spectral.Spectrum
}

// Metric reduces a Sample to a single diagnostic value.
type Metric interface {
	Name() string
	Measure(s *Sample) float64
}

// Defaults returns the diagnostics reported for every run.
func Defaults() []Metric {
	return []Metric{
		NewMaxDivergence(),
		NewMaxImag(),
		NewTotalEnergy(),
		NewRMSVelocity(),
		NewSpectralSlope(0, 0),
	}
}

// Evaluate measures every metric against s.
func Evaluate(s *Sample, ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Measure(s)
	}
	return out
}

// Names returns the sorted metric names of a result map.
func Names(values map[string]float64) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
