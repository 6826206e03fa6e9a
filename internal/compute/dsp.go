package compute

import "github.com/mjibson/go-dsp/fft"

type DSPBackend struct{}

func NewDSPBackend() *DSPBackend {
	return &DSPBackend{}
}

func (d *DSPBackend) Name() string { return "dsp" }

func (d *DSPBackend) FFT2(x [][]complex128) [][]complex128 {
	return fft.FFT2(x)
}

func (d *DSPBackend) IFFT2(x [][]complex128) [][]complex128 {
	return fft.IFFT2(x)
}
