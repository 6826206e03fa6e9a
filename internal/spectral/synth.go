package spectral

import (
	"fmt"
	"math/cmplx"
)

// Policy selects how the two velocity components are seeded before
// projection.
type Policy int

const (
	// SharedBase copies one random-phase field into both components.
	SharedBase Policy = iota
	// Independent draws a separate phase field per component.
	Independent
)

func (p Policy) String() string {
	switch p {
	case SharedBase:
		return "shared"
	case Independent:
		return "independent"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps a policy name back to its value.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "shared", "":
		return SharedBase, nil
	case "independent":
		return Independent, nil
	default:
		return 0, fmt.Errorf("unknown policy: %s", name)
	}
}

// Synthesizer combines modal amplitudes with phases drawn from Source.
type Synthesizer struct {
	Policy Policy
	Source PhaseSource

	// Hermitian pairs each mode with its mirror at -k so the inverse
	// transform is real up to rounding.
	Hermitian bool
}

func NewSynthesizer(policy Policy, src PhaseSource) *Synthesizer {
	return &Synthesizer{Policy: policy, Source: src}
}

// Synthesize returns the raw, not yet divergence-free, frequency-domain
// velocity components.
func (s *Synthesizer) Synthesize(g *Grid, amp [][]float64) (ux, uy [][]complex128) {
	base := s.field(g, amp)
	switch s.Policy {
	case Independent:
		return base, s.field(g, amp)
	default:
		return base, cloneComplex(base)
	}
}

func (s *Synthesizer) field(g *Grid, amp [][]float64) [][]complex128 {
	n := g.N
	out := newComplex(n)
	if !s.Hermitian {
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				out[r][c] = complex(amp[r][c], 0) * cmplx.Exp(complex(0, s.Source.Phase()))
			}
		}
		return out
	}

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			mr, mc := g.Mirror(r, c)
			switch {
			case isNyquist(n, r) || isNyquist(n, c):
				// the Nyquist wavenumber is its own alias, so projection
				// cannot keep these modes conjugate-paired
				out[r][c] = 0
			case mr == r && mc == c:
				out[r][c] = complex(amp[r][c], 0)
			case mr*n+mc < r*n+c:
				out[r][c] = cmplx.Conj(out[mr][mc])
			default:
				out[r][c] = complex(amp[r][c], 0) * cmplx.Exp(complex(0, s.Source.Phase()))
			}
		}
	}
	return out
}

func isNyquist(n, i int) bool {
	return n%2 == 0 && i == n/2
}

func cloneComplex(x [][]complex128) [][]complex128 {
	out := make([][]complex128, len(x))
	for i, row := range x {
		out[i] = make([]complex128, len(row))
		copy(out[i], row)
	}
	return out
}
