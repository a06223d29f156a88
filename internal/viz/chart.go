package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
)

// Bounds is the axis domain of the speed chart.
type Bounds struct {
	TMax float64
	VMax float64
}

// minSpeedSpan keeps the chart from collapsing while the body is at rest.
const minSpeedSpan = 1.0

// Domain returns [0, TMax] x [0, VMax] covering every sample's speed and,
// when drag is present, the terminal velocity so the reference line stays
// on screen.
func Domain(points []dynamo.DataPoint, p dynamo.Params) Bounds {
	b := Bounds{VMax: minSpeedSpan}
	for _, pt := range points {
		b.TMax = math.Max(b.TMax, pt.Time)
		b.VMax = math.Max(b.VMax, math.Abs(pt.Velocity))
	}
	if vt, ok := physics.TerminalVelocity(p); ok && !math.IsInf(vt, 0) {
		b.VMax = math.Max(b.VMax, vt)
	}
	return b
}

// SpeedSeries maps samples to |velocity|.
func SpeedSeries(points []dynamo.DataPoint) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = math.Abs(pt.Velocity)
	}
	return out
}

// ReferenceSeries is a flat line at the terminal velocity, or nil when the
// drag force vanishes.
func ReferenceSeries(p dynamo.Params, n int) []float64 {
	vt, ok := physics.TerminalVelocity(p)
	if !ok || n == 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = vt
	}
	return out
}

// SpeedChart plots |velocity| over the history with the terminal velocity
// overlaid.
func SpeedChart(points []dynamo.DataPoint, p dynamo.Params, th Theme, width, height int) string {
	if len(points) < 2 {
		return ""
	}
	b := Domain(points, p)
	series := [][]float64{SpeedSeries(points)}
	colors := []asciigraph.AnsiColor{th.Speed}
	if ref := ReferenceSeries(p, len(points)); ref != nil {
		series = append(series, ref)
		colors = append(colors, th.Reference)
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(b.VMax),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("|v| (m/s) over %.1f s", b.TMax)),
	)
}
