package loop

import (
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/barviz/internal/dataset"
)

var _ = Describe("Perturb", func() {
	It("keeps every value in range and within one step", func() {
		rng := rand.New(rand.NewSource(11))
		d, err := dataset.Generate(dataset.DefaultCount, rng)
		Expect(err).NotTo(HaveOccurred())

		for tick := 0; tick < 500; tick++ {
			before := d.Clone()
			Perturb(d, rng)
			Expect(d).To(HaveLen(len(before)))
			for i := range d {
				Expect(d[i].Label).To(Equal(before[i].Label))
				Expect(d[i].Value).To(BeNumerically(">=", dataset.MinValue))
				Expect(d[i].Value).To(BeNumerically("<=", dataset.MaxValue))
				Expect(math.Abs(d[i].Value - before[i].Value)).To(BeNumerically("<=", MaxStep))
			}
		}
	})

	It("clamps values pinned at the bounds", func() {
		rng := rand.New(rand.NewSource(12))
		d := dataset.Dataset{{Label: "A", Value: dataset.MinValue}, {Label: "B", Value: dataset.MaxValue}}
		for tick := 0; tick < 100; tick++ {
			Perturb(d, rng)
			Expect(d.Validate()).To(Succeed())
		}
	})

	It("moves values in both directions", func() {
		rng := rand.New(rand.NewSource(13))
		d := dataset.Dataset{{Label: "A", Value: 50}}
		up, down := false, false
		for tick := 0; tick < 100; tick++ {
			before := d[0].Value
			Perturb(d, rng)
			up = up || d[0].Value > before
			down = down || d[0].Value < before
		}
		Expect(up && down).To(BeTrue())
	})
})

var _ = Describe("Loop", func() {
	var l *Loop

	BeforeEach(func() {
		var err error
		l, err = New(DefaultInterval)
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts idle and rejects ticks", func() {
		Expect(l.State()).To(Equal(Idle))
		Expect(l.Accept(l.Seq())).To(BeFalse())
	})

	It("accepts only the current sequence while running", func() {
		seq := l.Start()
		Expect(l.Running()).To(BeTrue())
		Expect(l.Accept(seq)).To(BeTrue())
		Expect(l.Accept(seq - 1)).To(BeFalse())
	})

	It("drops in-flight ticks after stop", func() {
		seq := l.Start()
		l.Stop()
		Expect(l.State()).To(Equal(Idle))
		Expect(l.Accept(seq)).To(BeFalse())

		again := l.Start()
		Expect(l.Accept(seq)).To(BeFalse())
		Expect(l.Accept(again)).To(BeTrue())
	})

	It("toggles", func() {
		seq, running := l.Toggle()
		Expect(running).To(BeTrue())
		Expect(l.Accept(seq)).To(BeTrue())

		_, running = l.Toggle()
		Expect(running).To(BeFalse())
		Expect(l.Accept(seq)).To(BeFalse())
	})

	It("restarts the timer when the interval changes while running", func() {
		old := l.Start()
		seq, restart, err := l.SetInterval(200 * time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		Expect(restart).To(BeTrue())
		Expect(l.Interval()).To(Equal(200 * time.Millisecond))
		Expect(l.Accept(old)).To(BeFalse())
		Expect(l.Accept(seq)).To(BeTrue())
	})

	It("only records the interval while idle", func() {
		_, restart, err := l.SetInterval(300 * time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		Expect(restart).To(BeFalse())
		Expect(l.Interval()).To(Equal(300 * time.Millisecond))
	})

	It("rejects intervals out of range", func() {
		_, _, err := l.SetInterval(50 * time.Millisecond)
		Expect(err).To(MatchError(ErrIntervalRange))
		Expect(l.Interval()).To(Equal(DefaultInterval))

		_, err = New(time.Second)
		Expect(err).To(MatchError(ErrIntervalRange))
	})
})

var _ = DescribeTable("IntervalForSpeed",
	func(speed int, want time.Duration) {
		got, err := IntervalForSpeed(speed)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
		Expect(SpeedForInterval(got)).To(Equal(speed))
	},
	Entry("slowest", 100, 900*time.Millisecond),
	Entry("middle", 500, 500*time.Millisecond),
	Entry("fastest", 900, 100*time.Millisecond),
)

var _ = It("rejects speeds out of range", func() {
	_, err := IntervalForSpeed(950)
	Expect(err).To(MatchError(ErrSpeedRange))
	_, err = IntervalForSpeed(0)
	Expect(err).To(MatchError(ErrSpeedRange))
})
