package compute

import (
	"runtime"

	"gonum.org/v1/gonum/dsp/fourier"
)

// GonumBackend runs 1D gonum plans along columns and then rows. Each worker
// owns its own plan since CmplxFFT keeps internal scratch space.
type GonumBackend struct {
	workers int
}

// NewGonumBackend returns a backend using the given number of workers;
// workers <= 0 selects runtime.NumCPU.
func NewGonumBackend(workers int) *GonumBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &GonumBackend{workers: workers}
}

func (g *GonumBackend) Name() string { return "gonum" }

func (g *GonumBackend) FFT2(x [][]complex128) [][]complex128 {
	return g.transform(x, false)
}

func (g *GonumBackend) IFFT2(x [][]complex128) [][]complex128 {
	return g.transform(x, true)
}

func (g *GonumBackend) transform(x [][]complex128, inverse bool) [][]complex128 {
	rows := len(x)
	if rows == 0 {
		return [][]complex128{}
	}
	cols := len(x[0])

	out := make([][]complex128, rows)
	for i := range out {
		out[i] = make([]complex128, cols)
	}

	// columns
	parallelChunks(cols, g.workers, func(start, end int) {
		plan := fourier.NewCmplxFFT(rows)
		col := make([]complex128, rows)
		for c := start; c < end; c++ {
			for r := 0; r < rows; r++ {
				col[r] = x[r][c]
			}
			apply(plan, col, inverse)
			for r := 0; r < rows; r++ {
				out[r][c] = col[r]
			}
		}
	})

	// rows
	parallelChunks(rows, g.workers, func(start, end int) {
		plan := fourier.NewCmplxFFT(cols)
		for r := start; r < end; r++ {
			apply(plan, out[r], inverse)
		}
	})

	return out
}

func apply(plan *fourier.CmplxFFT, seq []complex128, inverse bool) {
	if !inverse {
		plan.Coefficients(seq, seq)
		return
	}
	plan.Sequence(seq, seq)
	scale := complex(1/float64(len(seq)), 0)
	for i := range seq {
		seq[i] *= scale
	}
}
