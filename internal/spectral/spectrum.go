package spectral

import (
	"fmt"
	"math/cmplx"
	"sort"

	"github.com/san-kum/turbsynth/internal/compute"
	"gonum.org/v1/gonum/floats"
)

const DefaultBinEdges = 50

// Bin is one radial shell [Low, High) of the estimated spectrum. The last
// bin also includes High.
type Bin struct {
	Low, High float64
	Center    float64
	Energy    float64
	Modes     int
}

// Mean returns the shell-averaged energy, zero for an empty bin.
func (b Bin) Mean() float64 {
	if b.Modes == 0 {
		return 0
	}
	return b.Energy / float64(b.Modes)
}

// Spectrum is an isotropic 1D energy spectrum ordered by bin center.
type Spectrum struct {
	Edges []float64
	Bins  []Bin
}

func (s *Spectrum) Centers() []float64 {
	out := make([]float64, len(s.Bins))
	for i, b := range s.Bins {
		out[i] = b.Center
	}
	return out
}

func (s *Spectrum) Energies() []float64 {
	out := make([]float64, len(s.Bins))
	for i, b := range s.Bins {
		out[i] = b.Energy
	}
	return out
}

func (s *Spectrum) Total() float64 {
	return floats.Sum(s.Energies())
}

// EnergyDensity forward-transforms f and returns 0.5(|Ux|²+|Uy|²) per mode.
func EnergyDensity(b compute.Backend, f *Field) [][]float64 {
	ux, uy := ToSpectral(b, f)
	e := make([][]float64, len(ux))
	for r := range ux {
		e[r] = make([]float64, len(ux[r]))
		for c := range ux[r] {
			ax, ay := cmplx.Abs(ux[r][c]), cmplx.Abs(uy[r][c])
			e[r][c] = 0.5 * (ax*ax + ay*ay)
		}
	}
	return e
}

// Estimate computes the radially binned energy spectrum of f using edges
// equally spaced bin edges over [0, max k], giving edges-1 bins.
func Estimate(b compute.Backend, g *Grid, f *Field, edges int) (*Spectrum, error) {
	if edges < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewBins, edges)
	}
	if len(f.Ux) != g.N || len(f.Uy) != g.N {
		return nil, fmt.Errorf("%w: field has %d/%d rows, want %d", ErrShapeMismatch, len(f.Ux), len(f.Uy), g.N)
	}
	return Bin2D(g, EnergyDensity(b, f), edges), nil
}

// Bin2D sums a per-mode quantity into radial shells of wavenumber magnitude.
func Bin2D(g *Grid, density [][]float64, edges int) *Spectrum {
	s := &Spectrum{
		Edges: floats.Span(make([]float64, edges), 0, g.MaxK()),
		Bins:  make([]Bin, edges-1),
	}
	for i := range s.Bins {
		lo, hi := s.Edges[i], s.Edges[i+1]
		s.Bins[i] = Bin{Low: lo, High: hi, Center: 0.5 * (lo + hi)}
	}

	last := len(s.Bins) - 1
	for r, row := range g.KMag {
		for c, k := range row {
			idx := sort.Search(len(s.Edges), func(i int) bool { return s.Edges[i] > k }) - 1
			if idx > last {
				idx = last
			}
			s.Bins[idx].Energy += density[r][c]
			s.Bins[idx].Modes++
		}
	}
	return s
}
