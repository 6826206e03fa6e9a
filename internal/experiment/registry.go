package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/turbsynth/internal/compute"
	"github.com/san-kum/turbsynth/internal/spectral"
)

type Registry struct {
	policies map[string]spectral.Policy
	phases   map[string]func(seed uint64, value float64) spectral.PhaseSource
	backends map[string]func() compute.Backend
}

func NewRegistry() *Registry {
	r := &Registry{
		policies: make(map[string]spectral.Policy),
		phases:   make(map[string]func(uint64, float64) spectral.PhaseSource),
		backends: make(map[string]func() compute.Backend),
	}

	r.policies["shared"] = spectral.SharedBase
	r.policies["independent"] = spectral.Independent

	r.phases["uniform"] = func(seed uint64, _ float64) spectral.PhaseSource {
		return spectral.NewUniformPhase(seed)
	}
	r.phases["constant"] = func(_ uint64, value float64) spectral.PhaseSource {
		return spectral.ConstantPhase(value)
	}

	for _, name := range compute.ListBackends() {
		r.backends[name] = func() compute.Backend {
			b, _ := compute.ByName(name)
			return b
		}
	}

	return r
}

func (r *Registry) GetPolicy(name string) (spectral.Policy, error) {
	p, ok := r.policies[name]
	if !ok {
		return 0, fmt.Errorf("unknown policy: %s", name)
	}
	return p, nil
}

func (r *Registry) GetPhaseSource(name string, seed uint64, value float64) (spectral.PhaseSource, error) {
	fn, ok := r.phases[name]
	if !ok {
		return nil, fmt.Errorf("unknown phase source: %s", name)
	}
	return fn(seed, value), nil
}

func (r *Registry) GetBackend(name string) (compute.Backend, error) {
	fn, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListPolicies() []string { return sortedKeys(r.policies) }
func (r *Registry) ListPhases() []string   { return sortedKeys(r.phases) }
func (r *Registry) ListBackends() []string { return sortedKeys(r.backends) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
