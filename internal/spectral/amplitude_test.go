package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmplitudeAtZero(t *testing.T) {
	assert.Equal(t, 0.0, AmplitudeAt(0))
}

func TestAmplitudeExact(t *testing.T) {
	for _, k := range []float64{0.5, 1, 2, 3.7, 90.5} {
		assert.Equal(t, math.Pow(k, -11.0/6.0), AmplitudeAt(k))
	}
}

func TestAmplitudeStrictlyDecreasing(t *testing.T) {
	prev := AmplitudeAt(0.01)
	for k := 0.02; k < 100; k += 0.37 {
		a := AmplitudeAt(k)
		require.Lessf(t, a, prev, "k=%f", k)
		prev = a
	}
}

func TestAmplitudeGrid(t *testing.T) {
	g, err := NewGrid(8, 2*math.Pi)
	require.NoError(t, err)

	amp := Amplitude(g)
	assert.Equal(t, 0.0, amp[0][0])
	for r := range amp {
		for c, a := range amp[r] {
			assert.False(t, math.IsNaN(a) || math.IsInf(a, 0))
			assert.GreaterOrEqual(t, a, 0.0)
			if g.KMag[r][c] > 0 {
				assert.Equal(t, math.Pow(g.KMag[r][c], AmplitudeExponent), a)
			}
		}
	}
}

func TestAmplitudeSpectrumScaling(t *testing.T) {
	// k² A(k)² should follow the Kolmogorov slope.
	for _, k := range []float64{1, 4, 16} {
		a := AmplitudeAt(k)
		assert.InDelta(t, math.Pow(k, KolmogorovSlope), k*k*a*a, 1e-12)
	}
}
