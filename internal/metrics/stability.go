package metrics

import "github.com/san-kum/turbsynth/internal/spectral"

// MaxDivergence reports max |k·u| over nonzero modes of the projected field.
type MaxDivergence struct{}

func NewMaxDivergence() *MaxDivergence { return &MaxDivergence{} }

func (m *MaxDivergence) Name() string { return "max_divergence" }

func (m *MaxDivergence) Measure(s *Sample) float64 {
	if s.Grid == nil || s.Ux == nil || s.Uy == nil {
		return 0
	}
	return spectral.Divergence(s.Grid, s.Ux, s.Uy)
}

// MaxImag reports the largest imaginary part dropped by the inverse transform.
type MaxImag struct{}

func NewMaxImag() *MaxImag { return &MaxImag{} }

func (m *MaxImag) Name() string { return "max_imag" }

func (m *MaxImag) Measure(s *Sample) float64 {
	if s.Field == nil {
		return 0
	}
	return s.Field.MaxImag
}
