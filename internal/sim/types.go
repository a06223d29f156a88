package sim

import (
	"io"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/sirupsen/logrus"
)

const (
	// FixedStep is the largest simulated interval handed to the integrator
	// in one call.
	FixedStep = 0.01

	// MaxFrameDt caps the wall-clock time consumed by a single frame.
	MaxFrameDt = 0.1

	DefaultMaxDuration = 120.0
)

type Observer interface {
	OnStep(s dynamo.State)
}

// Config controls a headless run.
type Config struct {
	Dt              float64
	MaxDuration     float64
	HistoryCapacity int
	SampleInterval  float64
}

func DefaultConfig() Config {
	return Config{
		Dt:              FixedStep,
		MaxDuration:     DefaultMaxDuration,
		HistoryCapacity: HistoryCapacity,
		SampleInterval:  SampleInterval,
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
