package spectral

import (
	"fmt"
	"math"

	"github.com/san-kum/turbsynth/internal/compute"
)

// Field is a physical-space velocity field on an N×N grid.
type Field struct {
	Ux, Uy [][]float64

	// MaxImag is the largest imaginary magnitude discarded by ToPhysical.
	// It is zero up to rounding when the spectral field is Hermitian.
	MaxImag float64
}

// ToPhysical inverse-transforms both components and keeps their real parts.
func ToPhysical(b compute.Backend, ux, uy [][]complex128) (*Field, error) {
	if len(ux) != len(uy) {
		return nil, fmt.Errorf("%w: %d vs %d rows", ErrShapeMismatch, len(ux), len(uy))
	}
	f := &Field{}
	f.Ux, f.MaxImag = realPart(b.IFFT2(ux), f.MaxImag)
	f.Uy, f.MaxImag = realPart(b.IFFT2(uy), f.MaxImag)
	return f, nil
}

// ToSpectral forward-transforms both physical components.
func ToSpectral(b compute.Backend, f *Field) (ux, uy [][]complex128) {
	return b.FFT2(compute.FromReal(f.Ux)), b.FFT2(compute.FromReal(f.Uy))
}

func realPart(x [][]complex128, maxImag float64) ([][]float64, float64) {
	out := make([][]float64, len(x))
	for r, row := range x {
		out[r] = make([]float64, len(row))
		for c, v := range row {
			out[r][c] = real(v)
			maxImag = math.Max(maxImag, math.Abs(imag(v)))
		}
	}
	return out, maxImag
}
