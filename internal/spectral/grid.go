package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Grid is a square periodic domain of side Length sampled at N points per
// axis, together with its angular wavenumber grid.
type Grid struct {
	N      int
	Length float64
	Dx     float64

	// X holds the N physical coordinates per axis, covering [0, Length).
	X []float64
	// K holds the N angular wavenumbers per axis in DFT order.
	K []float64

	KX, KY [][]float64
	K2     [][]float64
	KMag   [][]float64
}

// NewGrid builds the spatial and wavenumber grids for an n×n periodic
// domain of side length.
func NewGrid(n int, length float64) (*Grid, error) {
	if n <= 0 || !(length > 0) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("%w: n=%d, length=%g", ErrInvalidGrid, n, length)
	}

	dx := length / float64(n)
	g := &Grid{
		N:      n,
		Length: length,
		Dx:     dx,
		X:      make([]float64, n),
		K:      make([]float64, n),
	}

	// Freq is in cycles per sample; 2π/dx turns it into an angular wavenumber.
	plan := fourier.NewCmplxFFT(n)
	for i := 0; i < n; i++ {
		g.X[i] = float64(i) * dx
		g.K[i] = plan.Freq(i) * 2 * math.Pi / dx
	}

	g.KX = newReal(n)
	g.KY = newReal(n)
	g.K2 = newReal(n)
	g.KMag = newReal(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			kx, ky := g.K[c], g.K[r]
			g.KX[r][c] = kx
			g.KY[r][c] = ky
			g.K2[r][c] = kx*kx + ky*ky
			g.KMag[r][c] = math.Sqrt(g.K2[r][c])
		}
	}

	return g, nil
}

// Modes returns the number of Fourier modes, N².
func (g *Grid) Modes() int {
	return g.N * g.N
}

// MaxK returns the largest wavenumber magnitude on the grid.
func (g *Grid) MaxK() float64 {
	maxK := 0.0
	for _, row := range g.KMag {
		for _, k := range row {
			maxK = math.Max(maxK, k)
		}
	}
	return maxK
}

// SafeK2 returns a copy of K2 with the zero mode replaced by 1 so it can be
// used as a divisor.
func (g *Grid) SafeK2() [][]float64 {
	out := newReal(g.N)
	for r, row := range g.K2 {
		for c, k2 := range row {
			if k2 == 0 {
				k2 = 1
			}
			out[r][c] = k2
		}
	}
	return out
}

// Mirror returns the row and column of the mode at -k for the mode at (r, c).
func (g *Grid) Mirror(r, c int) (int, int) {
	return (g.N - r) % g.N, (g.N - c) % g.N
}

func (g *Grid) checkShape(x [][]complex128) error {
	if len(x) != g.N {
		return fmt.Errorf("%w: %d rows, want %d", ErrShapeMismatch, len(x), g.N)
	}
	for r, row := range x {
		if len(row) != g.N {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, r, len(row), g.N)
		}
	}
	return nil
}

func newReal(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	return out
}

func newComplex(n int) [][]complex128 {
	out := make([][]complex128, n)
	for i := range out {
		out[i] = make([]complex128, n)
	}
	return out
}
