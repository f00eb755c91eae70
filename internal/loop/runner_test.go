package loop

import (
	"context"
	"math/rand"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/barviz/internal/dataset"
)

var _ = Describe("Runner", func() {
	var (
		clock *manualClock
		data  dataset.Dataset
		r     *Runner

		mu    sync.Mutex
		seen  []int
	)

	interval := 200 * time.Millisecond

	BeforeEach(func() {
		clock = &manualClock{}
		data = dataset.Dataset{{Label: "A", Value: 10}, {Label: "B", Value: 50}, {Label: "C", Value: 30}}
		seen = nil

		var err error
		r, err = NewRunner(data, interval,
			WithClock(clock),
			WithRand(rand.New(rand.NewSource(5))),
			WithTickFunc(func(n int, d dataset.Dataset) {
				mu.Lock()
				seen = append(seen, n)
				mu.Unlock()
			}),
		)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		r.Stop()
	})

	advance := func(n int) {
		for i := 0; i < n; i++ {
			before := r.Ticks()
			clock.Advance(r.Interval())
			Eventually(r.Ticks).Should(Equal(before + 1))
		}
	}

	It("does not touch the caller's slice", func() {
		Expect(r.Start(context.Background())).To(Succeed())
		advance(3)
		Expect(data[0].Value).To(Equal(10.0))
	})

	It("perturbs once per interval and reports each tick", func() {
		Expect(r.Start(context.Background())).To(Succeed())
		advance(4)
		mu.Lock()
		Expect(seen).To(Equal([]int{1, 2, 3, 4}))
		mu.Unlock()
		Expect(r.Dataset().Validate()).To(Succeed())
	})

	It("never mutates after stop", func() {
		Expect(r.Start(context.Background())).To(Succeed())
		advance(2)

		r.Stop()
		Expect(r.Running()).To(BeFalse())
		frozen := r.Dataset()
		ticks := r.Ticks()

		for i := 0; i < 5; i++ {
			clock.Advance(interval)
		}
		Consistently(r.Ticks, 50*time.Millisecond).Should(Equal(ticks))
		Expect(r.Dataset()).To(Equal(frozen))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		Expect(r.Start(ctx)).To(Succeed())
		cancel()
		r.Wait()
		ticks := r.Ticks()
		clock.Advance(interval)
		Consistently(r.Ticks, 50*time.Millisecond).Should(Equal(ticks))
	})

	It("refuses a second start", func() {
		Expect(r.Start(context.Background())).To(Succeed())
		Expect(r.Start(context.Background())).To(MatchError(ErrRunning))
	})

	It("can restart after stop", func() {
		Expect(r.Start(context.Background())).To(Succeed())
		advance(1)
		r.Stop()
		Expect(r.Start(context.Background())).To(Succeed())
		advance(1)
		Expect(r.Ticks()).To(Equal(2))
	})

	It("applies a new interval on the running ticker", func() {
		Expect(r.Start(context.Background())).To(Succeed())
		Expect(r.SetInterval(100 * time.Millisecond)).To(Succeed())

		tk := clock.tickers[0]
		Eventually(tk.Period).Should(Equal(100 * time.Millisecond))

		clock.Advance(100 * time.Millisecond)
		Eventually(r.Ticks).Should(Equal(1))
	})

	It("validates the interval", func() {
		Expect(r.SetInterval(time.Second)).To(MatchError(ErrIntervalRange))
		_, err := NewRunner(data, 10*time.Millisecond)
		Expect(err).To(MatchError(ErrIntervalRange))
	})
})
