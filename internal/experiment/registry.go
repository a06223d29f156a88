package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/integrators"
	"github.com/san-kum/freefall/internal/metrics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["semi-implicit"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["euler-semi"] = r.integrators["semi-implicit"]
	r.integrators["explicit"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["euler"] = r.integrators["explicit"]

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownIntegrator, name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metric instances on every call.
func (r *Registry) DefaultMetrics() []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewImpactSpeed(),
		metrics.NewMaxSpeed(),
		metrics.NewEnergyLoss(),
		metrics.NewTerminalRatio(),
	}
}
