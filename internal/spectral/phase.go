package spectral

import (
	"math"
	"math/rand/v2"
)

// PhaseSource supplies one phase per Fourier mode, uniform on [0, 2π).
type PhaseSource interface {
	Phase() float64
}

// UniformPhase draws phases from a seeded PCG generator.
type UniformPhase struct {
	rng *rand.Rand
}

func NewUniformPhase(seed uint64) *UniformPhase {
	return &UniformPhase{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (u *UniformPhase) Phase() float64 {
	return 2 * math.Pi * u.rng.Float64()
}

// ConstantPhase returns the same phase for every mode.
type ConstantPhase float64

func (c ConstantPhase) Phase() float64 { return float64(c) }

// PhaseFunc adapts a function to PhaseSource.
type PhaseFunc func() float64

func (f PhaseFunc) Phase() float64 { return f() }
