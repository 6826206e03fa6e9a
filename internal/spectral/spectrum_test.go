package spectral

import (
	"math"
	"testing"

	"github.com/san-kum/turbsynth/internal/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func synthesizeField(t *testing.T, n int, seed uint64) (*Grid, *Field) {
	t.Helper()
	g, ux, uy := randomSpectralField(t, n, SharedBase, seed)
	require.NoError(t, Project(g, ux, uy))
	f, err := ToPhysical(compute.NewDSPBackend(), ux, uy)
	require.NoError(t, err)
	return g, f
}

func TestEstimateBinLayout(t *testing.T) {
	g, f := synthesizeField(t, 128, 1)

	s, err := Estimate(compute.NewDSPBackend(), g, f, 50)
	require.NoError(t, err)
	require.Len(t, s.Bins, 49)
	require.Len(t, s.Edges, 50)

	maxK := g.MaxK()
	assert.Equal(t, 0.0, s.Edges[0])
	assert.InDelta(t, maxK, s.Edges[49], 1e-12)

	prev := 0.0
	for i, b := range s.Bins {
		assert.Greaterf(t, b.Center, 0.0, "bin %d", i)
		assert.Lessf(t, b.Center, maxK, "bin %d", i)
		assert.Greaterf(t, b.Center, prev, "bin %d", i)
		prev = b.Center
	}
}

func TestEstimateConservesEnergy(t *testing.T) {
	g, f := synthesizeField(t, 32, 9)
	b := compute.NewDSPBackend()

	s, err := Estimate(b, g, f, 50)
	require.NoError(t, err)

	density := EnergyDensity(b, f)
	total := 0.0
	for _, row := range density {
		total += floats.Sum(row)
	}
	assert.InEpsilon(t, total, s.Total(), 1e-12)

	modes := 0
	for _, bin := range s.Bins {
		modes += bin.Modes
	}
	assert.Equal(t, g.Modes(), modes)
}

func TestBin2DAssignsMaxModeToLastBin(t *testing.T) {
	g, err := NewGrid(4, 2*math.Pi)
	require.NoError(t, err)

	density := newReal(4)
	maxK := g.MaxK()
	var maxModes int
	for r := range density {
		for c := range density[r] {
			density[r][c] = 1
			if g.KMag[r][c] == maxK {
				maxModes++
			}
		}
	}
	require.Equal(t, 1, maxModes)

	s := Bin2D(g, density, 3)
	last := s.Bins[len(s.Bins)-1]
	assert.Equal(t, 16.0, s.Total())
	assert.GreaterOrEqual(t, last.Modes, 1)
}

func TestBin2DZeroModeInFirstBin(t *testing.T) {
	g, err := NewGrid(8, 2*math.Pi)
	require.NoError(t, err)

	density := newReal(8)
	density[0][0] = 5

	s := Bin2D(g, density, 10)
	assert.Equal(t, 5.0, s.Bins[0].Energy)
	assert.Equal(t, 1, s.Bins[0].Modes)
}

func TestBin2DEmptyBinsAreZero(t *testing.T) {
	g, f := synthesizeField(t, 4, 3)
	s, err := Estimate(compute.NewDSPBackend(), g, f, 50)
	require.NoError(t, err)

	empty := 0
	for _, b := range s.Bins {
		if b.Modes == 0 {
			empty++
			assert.Equal(t, 0.0, b.Energy)
			assert.Equal(t, 0.0, b.Mean())
		}
	}
	assert.Greater(t, empty, 0)
}

func TestEstimateSinglePointGrid(t *testing.T) {
	g, err := NewGrid(1, 1)
	require.NoError(t, err)

	f := &Field{Ux: [][]float64{{2}}, Uy: [][]float64{{0}}}
	s, err := Estimate(compute.NewDSPBackend(), g, f, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Bins[len(s.Bins)-1].Modes)
	assert.Equal(t, 2.0, s.Total())
}

func TestEstimateTooFewBins(t *testing.T) {
	g, f := synthesizeField(t, 4, 1)
	_, err := Estimate(compute.NewDSPBackend(), g, f, 1)
	assert.ErrorIs(t, err, ErrTooFewBins)
}

func TestEstimateShapeMismatch(t *testing.T) {
	g, err := NewGrid(8, 2*math.Pi)
	require.NoError(t, err)
	_, f := synthesizeField(t, 4, 1)

	_, err = Estimate(compute.NewDSPBackend(), g, f, 10)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestEstimateKolmogorovTrend(t *testing.T) {
	g, f := synthesizeField(t, 64, 4)
	s, err := Estimate(compute.NewDSPBackend(), g, f, 32)
	require.NoError(t, err)

	// shell means decay with k
	assert.Greater(t, s.Bins[2].Mean(), s.Bins[15].Mean())
}
