package spectral

import (
	"fmt"
	"math"
)

const (
	// KolmogorovSlope is the inertial-range scaling exponent of E(k).
	KolmogorovSlope = -5.0 / 3.0

	DefaultAnchorIndex         = 5
	DefaultFallbackAnchorIndex = 1
)

// Reference is a k^(-5/3) curve through one bin of an estimated spectrum.
// It is a plotting aid, not a fit.
type Reference struct {
	Centers []float64
	Values  []float64

	// Index is the anchor position within Centers.
	Index   int
	AnchorK float64
	AnchorE float64
}

// NewReference anchors the reference line at position anchor among the bins
// with a positive center, or at fallback when there are not more than anchor
// such bins.
func NewReference(s *Spectrum, anchor, fallback int) (*Reference, error) {
	ref := &Reference{}
	energies := make([]float64, 0, len(s.Bins))
	for _, b := range s.Bins {
		if b.Center > 0 {
			ref.Centers = append(ref.Centers, b.Center)
			energies = append(energies, b.Energy)
		}
	}

	idx := fallback
	if len(ref.Centers) > anchor {
		idx = anchor
	}
	if idx < 0 || idx >= len(ref.Centers) {
		return nil, fmt.Errorf("%w: index %d with %d positive bins", ErrAnchorOutOfRange, idx, len(ref.Centers))
	}

	ref.Index = idx
	ref.AnchorK = ref.Centers[idx]
	ref.AnchorE = energies[idx]
	ref.Values = make([]float64, len(ref.Centers))
	for i, k := range ref.Centers {
		ref.Values[i] = ref.AnchorE * math.Pow(k/ref.AnchorK, KolmogorovSlope)
	}
	return ref, nil
}
