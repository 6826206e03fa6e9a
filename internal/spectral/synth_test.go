package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/turbsynth/internal/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPhaseRange(t *testing.T) {
	src := NewUniformPhase(1)
	for i := 0; i < 10000; i++ {
		p := src.Phase()
		require.GreaterOrEqual(t, p, 0.0)
		require.Less(t, p, 2*math.Pi)
	}
}

func TestUniformPhaseSeeded(t *testing.T) {
	a, b := NewUniformPhase(99), NewUniformPhase(99)
	c := NewUniformPhase(100)
	same, diff := true, false
	for i := 0; i < 32; i++ {
		pa, pb, pc := a.Phase(), b.Phase(), c.Phase()
		same = same && pa == pb
		diff = diff || pa != pc
	}
	assert.True(t, same, "equal seeds must reproduce phases")
	assert.True(t, diff, "different seeds should differ")
}

func TestSynthesizeSharedBase(t *testing.T) {
	g, err := NewGrid(8, 2*math.Pi)
	require.NoError(t, err)

	amp := Amplitude(g)
	ux, uy := NewSynthesizer(SharedBase, NewUniformPhase(5)).Synthesize(g, amp)
	for r := range ux {
		for c := range ux[r] {
			assert.Equal(t, ux[r][c], uy[r][c])
			assert.InDelta(t, amp[r][c], cmplx.Abs(ux[r][c]), 1e-12)
		}
	}

	// copies, not aliases
	ux[1][1] = 42
	assert.NotEqual(t, ux[1][1], uy[1][1])
}

func TestSynthesizeIndependent(t *testing.T) {
	g, err := NewGrid(8, 2*math.Pi)
	require.NoError(t, err)

	ux, uy := NewSynthesizer(Independent, NewUniformPhase(5)).Synthesize(g, Amplitude(g))
	differs := 0
	for r := range ux {
		for c := range ux[r] {
			if ux[r][c] != uy[r][c] {
				differs++
			}
		}
	}
	assert.Greater(t, differs, g.Modes()/2)
}

func TestSynthesizeConstantPhase(t *testing.T) {
	g, err := NewGrid(4, 2*math.Pi)
	require.NoError(t, err)

	amp := Amplitude(g)
	ux, _ := NewSynthesizer(SharedBase, ConstantPhase(0)).Synthesize(g, amp)
	for r := range ux {
		for c := range ux[r] {
			assert.Equal(t, complex(amp[r][c], 0), ux[r][c])
		}
	}
}

func TestSynthesizeHermitian(t *testing.T) {
	for _, n := range []int{8, 9} {
		g, err := NewGrid(n, 2*math.Pi)
		require.NoError(t, err)

		s := NewSynthesizer(Independent, NewUniformPhase(11))
		s.Hermitian = true
		ux, uy := s.Synthesize(g, Amplitude(g))
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				mr, mc := g.Mirror(r, c)
				assert.Equal(t, cmplx.Conj(ux[mr][mc]), ux[r][c])
				assert.Equal(t, cmplx.Conj(uy[mr][mc]), uy[r][c])
			}
		}

		require.NoError(t, Project(g, ux, uy))
		f, err := ToPhysical(compute.NewDSPBackend(), ux, uy)
		require.NoError(t, err)
		assert.Lessf(t, f.MaxImag, 1e-12, "n=%d", n)
	}
}

func TestSynthesizeNonHermitianReportsImag(t *testing.T) {
	g, ux, uy := randomSpectralField(t, 16, SharedBase, 2)
	require.NoError(t, Project(g, ux, uy))

	f, err := ToPhysical(compute.NewDSPBackend(), ux, uy)
	require.NoError(t, err)
	assert.Greater(t, f.MaxImag, 1e-6)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("independent")
	require.NoError(t, err)
	assert.Equal(t, Independent, p)

	p, err = ParsePolicy("shared")
	require.NoError(t, err)
	assert.Equal(t, SharedBase, p)
	assert.Equal(t, "shared", p.String())

	_, err = ParsePolicy("coupled")
	assert.Error(t, err)
}
