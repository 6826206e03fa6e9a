package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/turbsynth/internal/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripPhysical(t *testing.T) {
	n := 16
	f := &Field{Ux: newReal(n), Uy: newReal(n)}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			f.Ux[r][c] = math.Sin(float64(r)) + 0.25*float64(c)
			f.Uy[r][c] = math.Cos(float64(r * c))
		}
	}

	for _, name := range compute.ListBackends() {
		b, err := compute.ByName(name)
		require.NoError(t, err)

		ux, uy := ToSpectral(b, f)
		back, err := ToPhysical(b, ux, uy)
		require.NoError(t, err)

		assert.Less(t, back.MaxImag, 1e-12)
		for r := 0; r < n; r++ {
			assert.InDeltaSlicef(t, f.Ux[r], back.Ux[r], 1e-10, "%s row %d", name, r)
			assert.InDeltaSlicef(t, f.Uy[r], back.Uy[r], 1e-10, "%s row %d", name, r)
		}
	}
}

func TestZeroModeGivesZeroMean(t *testing.T) {
	g, err := NewGrid(4, 2*math.Pi)
	require.NoError(t, err)

	ux, uy := NewSynthesizer(SharedBase, ConstantPhase(0)).Synthesize(g, Amplitude(g))
	require.NoError(t, Project(g, ux, uy))
	assert.Equal(t, complex128(0), ux[0][0])

	f, err := ToPhysical(compute.NewDSPBackend(), ux, uy)
	require.NoError(t, err)

	sx, sy := 0.0, 0.0
	for r := range f.Ux {
		for c := range f.Ux[r] {
			sx += f.Ux[r][c]
			sy += f.Uy[r][c]
		}
	}
	assert.InDelta(t, 0, sx, 1e-12)
	assert.InDelta(t, 0, sy, 1e-12)

	back, _ := ToSpectral(compute.NewDSPBackend(), f)
	assert.InDelta(t, 0, cmplx.Abs(back[0][0]), 1e-12)
}

func TestToPhysicalShapeMismatch(t *testing.T) {
	_, err := ToPhysical(compute.NewDSPBackend(), newComplex(4), newComplex(3))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
