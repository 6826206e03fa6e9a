// Package viz renders realizations in the terminal.
//
//   - [PlotSpectrum]: asciigraph log10 E(k) against the k^(-5/3) reference
//   - [Canvas]: Braille pixel canvas used for quiver plots
//   - [Model]: Bubble Tea viewer that regenerates realizations on demand
//
// # Key Bindings
//
//	N - New seed
//	H - Toggle Hermitian synthesis
//	P - Toggle shared/independent policy
//	B - Cycle transform backend
//	Q - Quit
package viz
