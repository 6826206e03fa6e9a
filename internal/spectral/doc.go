// Package spectral synthesizes divergence-free random-phase velocity fields
// on a periodic 2D grid and estimates their radially binned energy spectrum.
//
// The pipeline, leaves first:
//
//   - [NewGrid]: physical coordinates and angular wavenumbers
//   - [Amplitude]: k^(-11/6) modal amplitudes, zero at k=0
//   - [Synthesizer]: random phases combined with amplitudes
//   - [Project]: removes the component parallel to each wavenumber
//   - [ToPhysical]: inverse transform to real velocity components
//   - [Estimate]: forward transform and radial binning of 0.5(|Ux|²+|Uy|²)
//
// # Example
//
//	g, _ := spectral.NewGrid(128, 2*math.Pi)
//	s := spectral.NewSynthesizer(spectral.SharedBase, spectral.NewUniformPhase(42))
//	ux, uy := s.Synthesize(g, spectral.Amplitude(g))
//	spectral.Project(g, ux, uy)
//	field, _ := spectral.ToPhysical(backend, ux, uy)
//	spec, _ := spectral.Estimate(backend, g, field, spectral.DefaultBinEdges)
//
// Grids are indexed [row][col], rows along y and columns along x.
package spectral
