package main

import (
	"bytes"
	"testing"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressLoggerInterval(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	p := newProgressLogger(log, 1)
	for _, tm := range []float64{0, 0.5, 0.99, 1.0, 1.5, 2.2, 2.9} {
		p.OnStep(dynamo.State{Time: tm, Y: 10})
	}

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	for i, want := range []float64{0, 1.0, 2.2} {
		assert.Equal(t, "drop progress", entries[i].Message)
		assert.Equal(t, want, entries[i].Data["time"])
	}
}

func TestRunLogsProgressAtDebug(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"run", "--no-save", "--height", "20", "--log-level", "debug"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, errOut.String(), "drop progress")
	assert.Contains(t, out.String(), "landed")
}
