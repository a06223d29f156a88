package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/freefall/internal/config"
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/sim"
	"github.com/sirupsen/logrus"
)

// Experiment is one headless drop described by a config.
type Experiment struct {
	cfg       config.Config
	simulator *sim.Simulator
	log       logrus.FieldLogger
}

func New(cfg config.Config, log logrus.FieldLogger) *Experiment {
	return &Experiment{cfg: cfg, log: log}
}

func (e *Experiment) Setup(r *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	integ, err := r.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	e.simulator = sim.New(integ)
	if e.log != nil {
		e.simulator.SetLogger(e.log.WithField("integrator", e.cfg.Integrator))
	}
	for _, m := range r.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.Params, e.SimConfig())
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:              e.cfg.Dt,
		MaxDuration:     e.cfg.MaxDuration,
		HistoryCapacity: e.cfg.HistoryCapacity,
		SampleInterval:  e.cfg.SampleInterval,
	}
}

// GetSimulator returns the simulator built by Setup, nil before it. Callers
// use it to attach observers such as progress reporting.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
