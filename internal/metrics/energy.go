package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// TotalEnergy is the sum of the binned spectrum.
type TotalEnergy struct{}

func NewTotalEnergy() *TotalEnergy { return &TotalEnergy{} }

func (e *TotalEnergy) Name() string { return "total_energy" }

func (e *TotalEnergy) Measure(s *Sample) float64 {
	if s.Spectrum == nil {
		return 0
	}
	return s.Spectrum.Total()
}

// RMSVelocity is sqrt(<ux² + uy²>) over the physical grid.
type RMSVelocity struct{}

func NewRMSVelocity() *RMSVelocity { return &RMSVelocity{} }

func (r *RMSVelocity) Name() string { return "rms_velocity" }

func (r *RMSVelocity) Measure(s *Sample) float64 {
	if s.Field == nil || len(s.Field.Ux) == 0 {
		return 0
	}
	sum, count := 0.0, 0
	for i := range s.Field.Ux {
		sum += floats.Dot(s.Field.Ux[i], s.Field.Ux[i]) + floats.Dot(s.Field.Uy[i], s.Field.Uy[i])
		count += len(s.Field.Ux[i])
	}
	return math.Sqrt(sum / float64(count))
}
