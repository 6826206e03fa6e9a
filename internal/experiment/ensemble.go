package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/turbsynth/internal/config"
	"github.com/san-kum/turbsynth/internal/spectral"
)

// Ensemble runs independent realizations with consecutive seeds.
type Ensemble struct {
	cfg       config.Config
	registry  *Registry
	numRuns   int
	seedStart uint64
}

func NewEnsemble(cfg config.Config, r *Registry, numRuns int, seedStart uint64) *Ensemble {
	return &Ensemble{cfg: cfg, registry: r, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, fmt.Errorf("ensemble size must be positive, got %d", e.numRuns)
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.seedStart + uint64(idx)

			exp := New(cfgCopy)
			if err := exp.Setup(e.registry, nil); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// MeanSpectrum averages bin energies across results that share a bin layout.
func MeanSpectrum(results []*Result) (*spectral.Spectrum, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to average")
	}

	first := results[0].Spectrum
	mean := &spectral.Spectrum{
		Edges: append([]float64(nil), first.Edges...),
		Bins:  make([]spectral.Bin, len(first.Bins)),
	}
	copy(mean.Bins, first.Bins)
	for i := range mean.Bins {
		mean.Bins[i].Energy = 0
	}

	for _, r := range results {
		if len(r.Spectrum.Bins) != len(mean.Bins) {
			return nil, fmt.Errorf("%w: %d vs %d bins", spectral.ErrShapeMismatch, len(r.Spectrum.Bins), len(mean.Bins))
		}
		for i, b := range r.Spectrum.Bins {
			mean.Bins[i].Energy += b.Energy / float64(len(results))
		}
	}
	return mean, nil
}
