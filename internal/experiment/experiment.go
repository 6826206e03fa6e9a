package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/turbsynth/internal/compute"
	"github.com/san-kum/turbsynth/internal/config"
	"github.com/san-kum/turbsynth/internal/metrics"
	"github.com/san-kum/turbsynth/internal/spectral"
)

// Result holds every derived product of one realization.
type Result struct {
	Grid      *spectral.Grid
	Ux, Uy    [][]complex128
	Field     *spectral.Field
	Spectrum  *spectral.Spectrum
	Reference *spectral.Reference
	Metrics   map[string]float64
	Elapsed   time.Duration
}

type Experiment struct {
	cfg         config.Config
	synthesizer *spectral.Synthesizer
	backend     compute.Backend
	metrics     []metrics.Metric
}

func New(cfg config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup resolves the configured policy, phase source and backend. A nil
// metric list selects metrics.Defaults.
func (e *Experiment) Setup(r *Registry, ms []metrics.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	policy, err := r.GetPolicy(e.cfg.Synthesis.Policy)
	if err != nil {
		return err
	}
	src, err := r.GetPhaseSource(e.cfg.Synthesis.Phase, e.cfg.Seed, e.cfg.Synthesis.PhaseValue)
	if err != nil {
		return err
	}
	backend, err := r.GetBackend(e.cfg.Backend)
	if err != nil {
		return err
	}

	e.synthesizer = spectral.NewSynthesizer(policy, src)
	e.synthesizer.Hermitian = e.cfg.Synthesis.Hermitian
	e.backend = backend

	if ms == nil {
		ms = metrics.Defaults()
		ms[len(ms)-1] = metrics.NewSpectralSlope(e.cfg.Spectrum.FitKMin, e.cfg.Spectrum.FitKMax)
	}
	e.metrics = ms
	return nil
}

// Run executes the pipeline stage by stage, checking ctx between stages.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.synthesizer == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	start := time.Now()
	res := &Result{}

	stages := []struct {
		name string
		fn   func() error
	}{
		{"grid", func() error {
			g, err := spectral.NewGrid(e.cfg.Grid.N, e.cfg.Grid.Length)
			res.Grid = g
			return err
		}},
		{"synthesis", func() error {
			res.Ux, res.Uy = e.synthesizer.Synthesize(res.Grid, spectral.Amplitude(res.Grid))
			return nil
		}},
		{"projection", func() error {
			return spectral.Project(res.Grid, res.Ux, res.Uy)
		}},
		{"transform", func() error {
			f, err := spectral.ToPhysical(e.backend, res.Ux, res.Uy)
			res.Field = f
			return err
		}},
		{"spectrum", func() error {
			s, err := spectral.Estimate(e.backend, res.Grid, res.Field, e.cfg.Spectrum.BinEdges)
			res.Spectrum = s
			return err
		}},
		{"reference", func() error {
			ref, err := spectral.NewReference(res.Spectrum, e.cfg.Spectrum.AnchorIndex, e.cfg.Spectrum.FallbackAnchorIndex)
			res.Reference = ref
			return err
		}},
	}

	for _, st := range stages {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}
		if err := st.fn(); err != nil {
			return res, &spectral.StageError{Stage: st.name, Wrapped: err}
		}
	}

	res.Metrics = metrics.Evaluate(&metrics.Sample{
		Grid:     res.Grid,
		Ux:       res.Ux,
		Uy:       res.Uy,
		Field:    res.Field,
		Spectrum: res.Spectrum,
	}, e.metrics)
	res.Elapsed = time.Since(start)

	return res, nil
}

// Config returns the configuration the experiment was built with.
func (e *Experiment) Config() config.Config {
	return e.cfg
}
