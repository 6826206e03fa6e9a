// Package compute provides the discrete Fourier transform backends used by
// the spectral pipeline.
//
// Two CPU backends are available:
//
//   - dsp: github.com/mjibson/go-dsp 2D transforms
//   - gonum: row/column passes over gonum dsp/fourier plans, split across workers
//
// Both follow the numpy normalization: FFT2 is unnormalized and IFFT2 divides
// by the number of samples.
//
//	backend := compute.GetBackend()
//	spec := backend.FFT2(field)
//	back := backend.IFFT2(spec)
package compute
