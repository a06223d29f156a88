package sim

import (
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/integrators"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const frame = 1.0 / 60

type countingIntegrator struct {
	inner dynamo.Integrator
	calls int
	dts   []float64
}

func (c *countingIntegrator) Step(s dynamo.State, p dynamo.Params, dt float64) dynamo.State {
	c.calls++
	c.dts = append(c.dts, dt)
	return c.inner.Step(s, p, dt)
}

// poisonIntegrator corrupts the state on one call.
type poisonIntegrator struct {
	inner  dynamo.Integrator
	calls  int
	poison int
}

func (p *poisonIntegrator) Step(s dynamo.State, params dynamo.Params, dt float64) dynamo.State {
	p.calls++
	if p.calls == p.poison {
		return dynamo.State{Time: s.Time + dt, Y: s.Y, V: math.NaN()}
	}
	return p.inner.Step(s, params, dt)
}

func scenario() dynamo.Params {
	return dynamo.Params{Mass: 10, Height: 200, DragCoeff: 0.47, AirDensity: 1.225, Diameter: 0.5, Gravity: 9.81, TimeScale: 1}
}

// playUntilLanded drives s at 60 Hz and returns the last timestamp used.
func playUntilLanded(s *Stepper) float64 {
	now := 0.0
	s.Start()
	for i := 0; i < 100000 && s.Phase() != Landed; i++ {
		now = float64(i) * frame
		s.Advance(now)
	}
	return now
}

var _ = Describe("Stepper", func() {
	var (
		params dynamo.Params
		s      *Stepper
	)

	BeforeEach(func() {
		params = scenario()
		s = NewStepper(params)
	})

	It("starts idle at the drop configuration", func() {
		Expect(s.Phase()).To(Equal(Idle))
		Expect(s.Snapshot()).To(Equal(dynamo.InitialState(params)))
		Expect(s.History()).To(HaveLen(1))
	})

	It("ignores frames while idle", func() {
		state, appended := s.Advance(1.0)
		Expect(appended).To(BeFalse())
		Expect(state.Time).To(BeZero())
	})

	It("uses the first frame after start as a baseline", func() {
		s.Start()
		state, appended := s.Advance(1000.0)
		Expect(appended).To(BeFalse())
		Expect(state).To(Equal(dynamo.InitialState(params)))

		state, _ = s.Advance(1000.05)
		Expect(state.Time).To(BeNumerically("~", 0.05, 1e-9))
	})

	It("clamps a stalled frame to the maximum frame time", func() {
		s.Start()
		s.Advance(0)
		state, appended := s.Advance(30.0)
		Expect(state.Time).To(BeNumerically("~", MaxFrameDt, 1e-9))
		Expect(appended).To(BeTrue())
	})

	It("treats a timestamp going backwards as an empty frame", func() {
		s.Start()
		s.Advance(5)
		state, _ := s.Advance(4)
		Expect(state.Time).To(BeZero())
	})

	It("scales simulated time", func() {
		params.TimeScale = 2
		s.SetParams(params)
		s.Start()
		s.Advance(0)
		state, _ := s.Advance(0.05)
		Expect(state.Time).To(BeNumerically("~", 0.1, 1e-9))
	})

	It("splits a frame into fixed sub-steps", func() {
		counter := &countingIntegrator{inner: integrators.NewSemiImplicitEuler()}
		s = NewStepper(params, WithIntegrator(counter))
		s.Start()
		s.Advance(0)

		s.Advance(0.1)
		Expect(counter.calls).To(Equal(10))

		counter.calls, counter.dts = 0, nil
		s.Advance(0.125)
		Expect(counter.calls).To(Equal(3))
		Expect(counter.dts[0]).To(Equal(FixedStep))
		Expect(counter.dts[2]).To(BeNumerically("~", 0.005, 1e-9))
	})

	It("lands the scenario drop later than a vacuum fall", func() {
		playUntilLanded(s)

		state := s.Snapshot()
		Expect(s.Phase()).To(Equal(Landed))
		Expect(state.HasLanded).To(BeTrue())
		Expect(state.Y).To(BeZero())
		Expect(state.V).To(BeZero())
		Expect(state.A).To(BeZero())
		Expect(state.Time).To(BeNumerically(">", math.Sqrt(2*200/9.81)))
	})

	It("records the first and final samples of a full run", func() {
		playUntilLanded(s)

		points := s.History()
		Expect(len(points)).To(BeNumerically("<=", HistoryCapacity))
		Expect(points[0].Time).To(BeNumerically("~", 0, 1e-12))
		last := points[len(points)-1]
		Expect(last.Time).To(Equal(s.Snapshot().Time))
		Expect(last.Position).To(BeZero())
		Expect(last.Velocity).To(BeZero())
	})

	It("samples no more often than the sample interval", func() {
		playUntilLanded(s)

		points := s.History()
		for i := 1; i < len(points)-1; i++ {
			Expect(points[i].Time - points[i-1].Time).To(BeNumerically(">", SampleInterval))
		}
	})

	It("evicts the oldest samples past capacity", func() {
		params.Height = 2000
		params.DragCoeff, params.AirDensity = 0, 0
		s = NewStepper(params)
		playUntilLanded(s)

		points := s.History()
		Expect(points).To(HaveLen(HistoryCapacity))
		Expect(points[0].Time).To(BeNumerically(">", 0))
		Expect(points[len(points)-1].Position).To(BeZero())
	})

	It("keeps a live history bounded whatever capacity is requested", func() {
		params.Height = 5000
		params.DragCoeff, params.AirDensity = 0, 0
		for _, capacity := range []int{0, -1, 10 * HistoryCapacity} {
			s = NewStepper(params, WithHistory(capacity, SampleInterval))
			playUntilLanded(s)
			Expect(s.History()).To(HaveLen(HistoryCapacity))
		}
	})

	It("honours a smaller history capacity", func() {
		s = NewStepper(params, WithHistory(20, 0))
		playUntilLanded(s)
		points := s.History()
		Expect(points).To(HaveLen(20))
		Expect(points[len(points)-1].Position).To(BeZero())
	})

	It("stays frozen after landing", func() {
		now := playUntilLanded(s)
		landed := s.Snapshot()

		state, appended := s.Advance(now + 1)
		Expect(appended).To(BeFalse())
		Expect(state).To(Equal(landed))
	})

	It("resets before replaying a landed drop", func() {
		now := playUntilLanded(s)

		s.Start()
		Expect(s.Phase()).To(Equal(Playing))
		Expect(s.Snapshot()).To(Equal(dynamo.InitialState(params)))
		Expect(s.History()).To(HaveLen(1))

		state, _ := s.Advance(now + 1)
		Expect(state).To(Equal(dynamo.InitialState(params)))
	})

	It("does not jump after a pause", func() {
		s.Start()
		s.Advance(0)
		s.Advance(0.1)
		s.Pause()
		Expect(s.Phase()).To(Equal(Paused))

		state, _ := s.Advance(0.2)
		Expect(state.Time).To(BeNumerically("~", 0.1, 1e-9))

		s.Start()
		state, _ = s.Advance(50)
		Expect(state.Time).To(BeNumerically("~", 0.1, 1e-9))
		state, _ = s.Advance(50.05)
		Expect(state.Time).To(BeNumerically("~", 0.15, 1e-9))
	})

	It("suspends like a pause", func() {
		s.Start()
		s.Suspend()
		Expect(s.Phase()).To(Equal(Paused))
	})

	It("resets state and history but keeps params", func() {
		params.Gravity = 3.7
		s.SetParams(params)
		s.Start()
		s.Advance(0)
		for i := 1; i <= 20; i++ {
			s.Advance(float64(i) * frame)
		}
		Expect(len(s.History())).To(BeNumerically(">", 1))

		s.Reset()
		Expect(s.Phase()).To(Equal(Idle))
		Expect(s.Params()).To(Equal(params))
		Expect(s.Snapshot()).To(Equal(dynamo.InitialState(params)))
		Expect(s.History()).To(ConsistOf(dynamo.InitialState(params).Sample()))
	})

	Describe("SetParams", func() {
		It("re-derives the resting state before the drop starts", func() {
			params.Height = 50
			params.Gravity = 1.62
			s.SetParams(params)

			Expect(s.Snapshot().Y).To(Equal(50.0))
			Expect(s.Snapshot().A).To(Equal(-1.62))
			Expect(s.History()[0].Position).To(Equal(50.0))
		})

		It("leaves a drop in progress alone", func() {
			s.Start()
			s.Advance(0)
			s.Advance(0.1)
			s.Pause()
			before := s.Snapshot()

			params.Height = 50
			s.SetParams(params)
			Expect(s.Snapshot()).To(Equal(before))
			Expect(s.Params().Height).To(Equal(50.0))
		})

		It("does not move the body while playing", func() {
			s.Start()
			params.Height = 50
			s.SetParams(params)
			Expect(s.Snapshot().Y).To(Equal(200.0))
		})
	})

	It("restarts the drop when the state diverges", func() {
		poison := &poisonIntegrator{inner: integrators.NewSemiImplicitEuler(), poison: 3}
		s = NewStepper(params, WithIntegrator(poison))
		s.Start()
		s.Advance(0)

		state, _ := s.Advance(0.1)
		Expect(s.Recoveries()).To(Equal(1))
		Expect(state.HasLanded).To(BeFalse())
		Expect(state.Time).To(BeNumerically("~", 0.06, 1e-9))
		Expect(s.History()[0].Time).To(BeZero())
	})
})
