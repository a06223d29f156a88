package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/sirupsen/logrus"
)

// Simulator runs a drop headless, as fast as possible, until the body lands
// or the configured duration runs out. A run that stops on a state with a
// NaN or Inf component returns the partial result with ErrInvalidState.
type Simulator struct {
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []Observer
	log        logrus.FieldLogger
}

func New(integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]Observer, 0),
		log:        discardLogger(),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)    { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l logrus.FieldLogger) {
	s.log = l
}

func (s *Simulator) Run(ctx context.Context, p dynamo.Params, cfg Config) (*dynamo.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	hist := NewHistory(cfg.HistoryCapacity, cfg.SampleInterval)
	result := &dynamo.Result{Metrics: make(map[string]float64)}

	x := dynamo.InitialState(p)
	hist.Observe(x, false)

	steps := int(math.Ceil(cfg.MaxDuration / cfg.Dt))
	log := s.log.WithFields(logrus.Fields{"dt": cfg.Dt, "max_steps": steps})
	log.Info("run started")

	for i := 0; i < steps && !x.HasLanded; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, x, hist)
			return result, &dynamo.SimulationError{
				Step:    i,
				Time:    x.Time,
				State:   x,
				Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err()),
			}
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, p)
		}
		for _, obs := range s.observers {
			obs.OnStep(x)
		}

		prev := x
		x = s.integrator.Step(x, p, cfg.Dt)
		result.StepsTaken++

		if prev.Diverged() {
			result.Recoveries++
			hist.Reset(x)
			log.WithField("step", i).Warn("state diverged, restarting drop")
			continue
		}
		hist.Observe(x, x.HasLanded)
	}

	s.finish(result, x, hist)
	if !x.IsValid() {
		log.WithField("state", x).Error("run ended on an invalid state")
		return result, &dynamo.SimulationError{
			Step:    result.StepsTaken,
			Time:    x.Time,
			State:   x,
			Wrapped: fmt.Errorf("%w: after %d steps", dynamo.ErrInvalidState, result.StepsTaken),
		}
	}
	log.WithFields(logrus.Fields{
		"steps":  result.StepsTaken,
		"landed": x.HasLanded,
		"time":   x.Time,
	}).Info("run finished")

	return result, nil
}

func (s *Simulator) finish(result *dynamo.Result, x dynamo.State, hist *History) {
	result.Final = x
	result.Points = hist.Points()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f: %w", cfg.Dt, dynamo.ErrInvalidConfig)
	}
	if cfg.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive, got %f: %w", cfg.MaxDuration, dynamo.ErrInvalidConfig)
	}
	if cfg.SampleInterval < 0 {
		return fmt.Errorf("sample interval must be non-negative, got %f: %w", cfg.SampleInterval, dynamo.ErrInvalidConfig)
	}
	return nil
}
