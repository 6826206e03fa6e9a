package config

import "sort"

func preset(mod func(c *Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"coarse": preset(func(c *Config) {
		c.Grid.N = 32
		c.Spectrum.BinEdges = 16
	}),
	"fine": preset(func(c *Config) {
		c.Grid.N = 256
		c.Spectrum.BinEdges = 100
		c.Backend = "gonum"
	}),
	"hermitian": preset(func(c *Config) {
		c.Synthesis.Hermitian = true
	}),
	"independent": preset(func(c *Config) {
		c.Synthesis.Policy = "independent"
		c.Synthesis.Hermitian = true
	}),
	"constant-phase": preset(func(c *Config) {
		c.Grid.N = 4
		c.Synthesis.Phase = "constant"
		c.Synthesis.PhaseValue = 0
		c.Spectrum.BinEdges = 4
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
