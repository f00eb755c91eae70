package loop

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/barviz/internal/dataset"
)

// TickFunc observes the dataset after a tick. It runs on the runner goroutine
// and must not retain d.
type TickFunc func(tick int, d dataset.Dataset)

// Runner perturbs a dataset it owns on a dedicated goroutine.
type Runner struct {
	clock  Clock
	rng    *rand.Rand
	log    *slog.Logger
	onTick TickFunc

	mu       sync.Mutex
	data     dataset.Dataset
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	reset    chan time.Duration
	ticks    int
}

type RunnerOption func(*Runner)

func WithClock(c Clock) RunnerOption         { return func(r *Runner) { r.clock = c } }
func WithLogger(l *slog.Logger) RunnerOption { return func(r *Runner) { r.log = l } }
func WithTickFunc(fn TickFunc) RunnerOption  { return func(r *Runner) { r.onTick = fn } }
func WithRand(rng *rand.Rand) RunnerOption   { return func(r *Runner) { r.rng = rng } }

func NewRunner(d dataset.Dataset, interval time.Duration, opts ...RunnerOption) (*Runner, error) {
	if err := ValidateInterval(interval); err != nil {
		return nil, err
	}
	r := &Runner{
		clock:    RealClock{},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      slog.New(slog.DiscardHandler),
		data:     d.Clone(),
		interval: interval,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Start launches the tick goroutine. It returns ErrRunning if already started.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.reset = make(chan time.Duration, 1)
	ticker := r.clock.NewTicker(r.interval)
	r.log.Debug("runner started", "interval", r.interval)
	go r.run(ctx, ticker, r.done, r.reset)
	return nil
}

func (r *Runner) run(ctx context.Context, ticker Ticker, done chan struct{}, reset <-chan time.Duration) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-reset:
			ticker.Reset(d)
		case <-ticker.C():
			// a stop racing with the tick wins
			if ctx.Err() != nil {
				return
			}
			r.tick()
		}
	}
}

func (r *Runner) tick() {
	r.mu.Lock()
	Perturb(r.data, r.rng)
	r.ticks++
	n, snap := r.ticks, r.data.Clone()
	r.mu.Unlock()

	if r.onTick != nil {
		r.onTick(n, snap)
	}
}

// Stop cancels the goroutine and waits for it to exit. After Stop returns
// the dataset is never touched again until the next Start.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.log.Debug("runner stopped", "ticks", r.Ticks())
}

// Wait blocks until the goroutine exits on its own (context cancelled).
func (r *Runner) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// SetInterval changes the tick period; a running ticker is reset.
func (r *Runner) SetInterval(d time.Duration) error {
	if err := ValidateInterval(d); err != nil {
		return err
	}
	r.mu.Lock()
	r.interval = d
	reset := r.reset
	running := r.cancel != nil
	r.mu.Unlock()
	if running {
		// drop a pending reset so the latest interval wins
		select {
		case <-reset:
		default:
		}
		select {
		case reset <- d:
		default:
		}
	}
	return nil
}

func (r *Runner) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// Dataset returns a copy of the current values.
func (r *Runner) Dataset() dataset.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.Clone()
}

func (r *Runner) Ticks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}
