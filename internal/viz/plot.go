package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/turbsynth/internal/spectral"
)

// LogSeries returns log10 of each value, NaN where the value is not positive
// so asciigraph leaves a gap.
func LogSeries(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v > 0 {
			out[i] = math.Log10(v)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// PlotSpectrum draws log10 E per bin and, when ref is non-nil, the
// reference line over the same bins.
func PlotSpectrum(s *spectral.Spectrum, ref *spectral.Reference, width, height int) string {
	series := [][]float64{LogSeries(s.Energies())}
	colors := []asciigraph.AnsiColor{asciigraph.Green}
	if ref != nil {
		// reference covers only positive-center bins, which lead the spectrum
		refSeries := make([]float64, len(s.Bins))
		offset := len(s.Bins) - len(ref.Values)
		for i := offset; i < len(refSeries); i++ {
			refSeries[i] = ref.Values[i-offset]
		}
		series = append(series, LogSeries(refSeries))
		colors = append(colors, asciigraph.White)
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption("log10 E(k) per bin (green) vs k^-5/3 (white)"),
	)
}
