package spectral

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/turbsynth/internal/compute"
)

// Project removes, in place, the component of (ux, uy) parallel to the
// wavenumber vector at every mode. Applying it twice is the same as once.
func Project(g *Grid, ux, uy [][]complex128) error {
	if err := g.checkShape(ux); err != nil {
		return err
	}
	if err := g.checkShape(uy); err != nil {
		return err
	}

	k2 := g.SafeK2()
	compute.ParallelFor(g.N, 16, func(start, end int) {
		for r := start; r < end; r++ {
			for c := 0; c < g.N; c++ {
				kx := complex(g.KX[r][c], 0)
				ky := complex(g.KY[r][c], 0)
				d := (kx*ux[r][c] + ky*uy[r][c]) / complex(k2[r][c], 0)
				ux[r][c] -= kx * d
				uy[r][c] -= ky * d
			}
		}
	})
	return nil
}

// Divergence returns max |kx·ux + ky·uy| over modes with k² > 0.
func Divergence(g *Grid, ux, uy [][]complex128) float64 {
	worst := 0.0
	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			if g.K2[r][c] == 0 {
				continue
			}
			div := complex(g.KX[r][c], 0)*ux[r][c] + complex(g.KY[r][c], 0)*uy[r][c]
			worst = math.Max(worst, cmplx.Abs(div))
		}
	}
	return worst
}
