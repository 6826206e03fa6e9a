package compute

import (
	"fmt"
	"sort"
)

// Backend computes 2D discrete Fourier transforms over row-major grids.
// Implementations never modify their input.
type Backend interface {
	Name() string
	FFT2(x [][]complex128) [][]complex128
	IFFT2(x [][]complex128) [][]complex128
}

var backends = map[string]func() Backend{
	"dsp":   func() Backend { return NewDSPBackend() },
	"gonum": func() Backend { return NewGonumBackend(0) },
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend returns the go-dsp backend, which handles arbitrary
// grid sizes without per-size plans.
func AutoSelectBackend() Backend {
	return NewDSPBackend()
}

// ByName returns a fresh backend registered under name.
func ByName(name string) (Backend, error) {
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
	return fn(), nil
}

func ListBackends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromReal lifts a real grid to complex128.
func FromReal(x [][]float64) [][]complex128 {
	out := make([][]complex128, len(x))
	for i, row := range x {
		out[i] = make([]complex128, len(row))
		for j, v := range row {
			out[i][j] = complex(v, 0)
		}
	}
	return out
}
