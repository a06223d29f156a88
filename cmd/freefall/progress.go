package main

import (
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/sirupsen/logrus"
)

// progressLogger reports a headless drop at debug level once per interval
// of simulated time.
type progressLogger struct {
	log      logrus.FieldLogger
	interval float64
	next     float64
}

func newProgressLogger(log logrus.FieldLogger, interval float64) *progressLogger {
	return &progressLogger{log: log, interval: interval}
}

func (p *progressLogger) OnStep(s dynamo.State) {
	if s.Time < p.next {
		return
	}
	p.log.WithFields(logrus.Fields{
		"time": s.Time,
		"y":    s.Y,
		"v":    s.V,
	}).Debug("drop progress")
	p.next = s.Time + p.interval
}
