package spectral

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid indicates a non-positive resolution or domain length.
	ErrInvalidGrid = errors.New("spectral: grid resolution and domain length must be positive")

	// ErrShapeMismatch indicates arrays whose shape differs from the grid.
	ErrShapeMismatch = errors.New("spectral: array shape does not match grid")

	// ErrTooFewBins indicates fewer than two bin edges were requested.
	ErrTooFewBins = errors.New("spectral: at least two bin edges are required")

	// ErrAnchorOutOfRange indicates the spectrum has too few bins with a
	// positive center to anchor the reference line.
	ErrAnchorOutOfRange = errors.New("spectral: reference anchor index out of range")
)

// StageError wraps an error with the pipeline stage that produced it.
type StageError struct {
	Stage   string
	Wrapped error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Wrapped)
}

func (e *StageError) Unwrap() error {
	return e.Wrapped
}
