package sim

import (
	"context"
	"sync"

	"github.com/san-kum/freefall/internal/dynamo"
)

// Ensemble runs the same configuration over many parameter sets
// concurrently. Each run gets its own Simulator and fresh metrics, so
// newMetrics must return new instances on every call.
type Ensemble struct {
	integrator dynamo.Integrator
	newMetrics func() []dynamo.Metric
}

func NewEnsemble(integrator dynamo.Integrator, newMetrics func() []dynamo.Metric) *Ensemble {
	return &Ensemble{integrator: integrator, newMetrics: newMetrics}
}

// Run returns one result per entry of params, in the same order.
func (e *Ensemble) Run(ctx context.Context, params []dynamo.Params, cfg Config) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	for i := range params {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New(e.integrator)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, params[idx], cfg)
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
