package sim

import "github.com/san-kum/freefall/internal/dynamo"

const (
	// HistoryCapacity bounds the live trajectory buffer.
	HistoryCapacity = 500

	// SampleInterval is the minimum simulated time between two samples.
	SampleInterval = 0.03
)

// History is a decimated, bounded trajectory. Oldest points are dropped once
// the capacity is exceeded. A capacity of 0 keeps everything.
type History struct {
	points   []dynamo.DataPoint
	capacity int
	interval float64
}

func NewHistory(capacity int, interval float64) *History {
	size := capacity
	if size <= 0 {
		size = HistoryCapacity
	}
	return &History{
		points:   make([]dynamo.DataPoint, 0, size),
		capacity: capacity,
		interval: interval,
	}
}

// Observe records s if it is due: the buffer is empty, more than the sample
// interval has elapsed since the last point, or the body just landed.
func (h *History) Observe(s dynamo.State, justLanded bool) bool {
	if len(h.points) > 0 && !justLanded {
		last := h.points[len(h.points)-1]
		if s.Time-last.Time <= h.interval {
			return false
		}
	}
	h.push(s.Sample())
	return true
}

func (h *History) push(p dynamo.DataPoint) {
	h.points = append(h.points, p)
	if h.capacity > 0 && len(h.points) > h.capacity {
		h.points = h.points[len(h.points)-h.capacity:]
	}
}

// Reset drops every point and seeds the buffer with s.
func (h *History) Reset(s dynamo.State) {
	h.points = h.points[:0]
	h.push(s.Sample())
}

func (h *History) Len() int { return len(h.points) }

// Points returns a copy of the samples, oldest first.
func (h *History) Points() []dynamo.DataPoint {
	out := make([]dynamo.DataPoint, len(h.points))
	copy(out, h.points)
	return out
}

func (h *History) Last() (dynamo.DataPoint, bool) {
	if len(h.points) == 0 {
		return dynamo.DataPoint{}, false
	}
	return h.points[len(h.points)-1], true
}
