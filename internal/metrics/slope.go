package metrics

import (
	"math"

	"github.com/san-kum/turbsynth/internal/spectral"
	"gonum.org/v1/gonum/stat"
)

// SpectralSlope fits log E against log k by least squares over non-empty
// bins with KMin <= center <= KMax. A zero KMax means no upper limit.
type SpectralSlope struct {
	KMin, KMax float64
}

func NewSpectralSlope(kMin, kMax float64) *SpectralSlope {
	return &SpectralSlope{KMin: kMin, KMax: kMax}
}

func (m *SpectralSlope) Name() string { return "spectral_slope" }

// Measure returns NaN when fewer than two bins qualify.
func (m *SpectralSlope) Measure(s *Sample) float64 {
	if s.Spectrum == nil {
		return math.NaN()
	}
	_, slope := m.Fit(s.Spectrum)
	return slope
}

// Fit returns the intercept and slope of the log-log regression.
func (m *SpectralSlope) Fit(spec *spectral.Spectrum) (float64, float64) {
	var xs, ys []float64
	for _, b := range spec.Bins {
		if b.Center <= 0 || b.Energy <= 0 || b.Center < m.KMin {
			continue
		}
		if m.KMax > 0 && b.Center > m.KMax {
			continue
		}
		xs = append(xs, math.Log(b.Center))
		ys = append(ys, math.Log(b.Energy))
	}
	if len(xs) < 2 {
		return math.NaN(), math.NaN()
	}
	return stat.LinearRegression(xs, ys, nil, false)
}
