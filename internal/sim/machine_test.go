package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Transition", func() {
	DescribeTable("valid transitions",
		func(from Phase, e Event, want Phase) {
			next, ok := Transition(from, e)
			Expect(ok).To(BeTrue())
			Expect(next).To(Equal(want))
		},
		Entry("idle starts", Idle, Start, Playing),
		Entry("paused resumes", Paused, Start, Playing),
		Entry("landed restarts", Landed, Start, Playing),
		Entry("playing pauses", Playing, Pause, Paused),
		Entry("playing suspends", Playing, Suspend, Paused),
		Entry("playing lands", Playing, Land, Landed),
		Entry("landed resets", Landed, Reset, Idle),
		Entry("paused resets", Paused, Reset, Idle),
		Entry("playing resets", Playing, Reset, Idle),
	)

	DescribeTable("ignored events",
		func(from Phase, e Event) {
			next, ok := Transition(from, e)
			Expect(ok).To(BeFalse())
			Expect(next).To(Equal(from))
		},
		Entry("start while playing", Playing, Start),
		Entry("pause while idle", Idle, Pause),
		Entry("pause while landed", Landed, Pause),
		Entry("land while paused", Paused, Land),
		Entry("land while idle", Idle, Land),
	)

	It("names phases and events", func() {
		Expect(Landed.String()).To(Equal("landed"))
		Expect(Suspend.String()).To(Equal("suspend"))
		Expect(Phase(42).String()).To(Equal("phase(42)"))
	})
})
