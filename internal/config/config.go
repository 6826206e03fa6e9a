package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultN                   = 128
	DefaultLength              = 2 * math.Pi
	DefaultBinEdges            = 50
	DefaultAnchorIndex         = 5
	DefaultFallbackAnchorIndex = 1
	DefaultPolicy              = "shared"
	DefaultPhase               = "uniform"
	DefaultBackend             = "dsp"
)

type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Spectrum  SpectrumConfig  `yaml:"spectrum"`
	Backend   string          `yaml:"backend"`
	Seed      uint64          `yaml:"seed"`
}

type GridConfig struct {
	N      int     `yaml:"n"`
	Length float64 `yaml:"length"`
}

type SynthesisConfig struct {
	Policy     string  `yaml:"policy"`
	Phase      string  `yaml:"phase"`
	PhaseValue float64 `yaml:"phase_value"`
	Hermitian  bool    `yaml:"hermitian"`
}

type SpectrumConfig struct {
	// BinEdges is the number of edges; the spectrum has BinEdges-1 bins.
	BinEdges            int     `yaml:"bin_edges"`
	AnchorIndex         int     `yaml:"anchor_index"`
	FallbackAnchorIndex int     `yaml:"fallback_anchor_index"`
	FitKMin             float64 `yaml:"fit_k_min"`
	FitKMax             float64 `yaml:"fit_k_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			N:      DefaultN,
			Length: DefaultLength,
		},
		Synthesis: SynthesisConfig{
			Policy: DefaultPolicy,
			Phase:  DefaultPhase,
		},
		Spectrum: SpectrumConfig{
			BinEdges:            DefaultBinEdges,
			AnchorIndex:         DefaultAnchorIndex,
			FallbackAnchorIndex: DefaultFallbackAnchorIndex,
		},
		Backend: DefaultBackend,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Grid.N <= 0 {
		return fmt.Errorf("grid n must be positive, got %d", c.Grid.N)
	}
	if !(c.Grid.Length > 0) || math.IsInf(c.Grid.Length, 0) {
		return fmt.Errorf("grid length must be positive, got %g", c.Grid.Length)
	}
	if c.Spectrum.BinEdges < 2 {
		return fmt.Errorf("bin_edges must be at least 2, got %d", c.Spectrum.BinEdges)
	}
	if c.Spectrum.AnchorIndex < 0 || c.Spectrum.FallbackAnchorIndex < 0 {
		return fmt.Errorf("anchor indices must be non-negative")
	}
	switch c.Synthesis.Phase {
	case "uniform":
	case "constant":
		if c.Synthesis.PhaseValue < 0 || c.Synthesis.PhaseValue >= 2*math.Pi {
			return fmt.Errorf("phase_value must be in [0, 2π), got %g", c.Synthesis.PhaseValue)
		}
	default:
		return fmt.Errorf("unknown phase source: %s", c.Synthesis.Phase)
	}
	return nil
}

// Bins returns the number of spectrum bins.
func (c *Config) Bins() int {
	return c.Spectrum.BinEdges - 1
}
