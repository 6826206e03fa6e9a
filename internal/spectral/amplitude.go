package spectral

import "math"

// AmplitudeExponent makes k²·A(k)² scale as k^(-5/3). It is tied to that
// derivation and is not a tuning knob.
const AmplitudeExponent = -11.0 / 6.0

// AmplitudeAt returns the modal amplitude for wavenumber magnitude k.
func AmplitudeAt(k float64) float64 {
	if k == 0 {
		return 0
	}
	return math.Pow(k, AmplitudeExponent)
}

// Amplitude maps every mode of g to its target spectral amplitude.
func Amplitude(g *Grid) [][]float64 {
	amp := newReal(g.N)
	for r, row := range g.KMag {
		for c, k := range row {
			amp[r][c] = AmplitudeAt(k)
		}
	}
	return amp
}
