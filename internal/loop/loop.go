package loop

import (
	"fmt"
	"time"
)

const (
	MinInterval     = 100 * time.Millisecond
	MaxInterval     = 900 * time.Millisecond
	DefaultInterval = 500 * time.Millisecond

	MinSpeed  = 100
	MaxSpeed  = 900
	speedBase = 1000
)

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// IntervalForSpeed maps the user-facing speed (100 slow .. 900 fast) to a tick
// interval of 1000-speed milliseconds.
func IntervalForSpeed(speed int) (time.Duration, error) {
	if speed < MinSpeed || speed > MaxSpeed {
		return 0, fmt.Errorf("speed %d: %w", speed, ErrSpeedRange)
	}
	return time.Duration(speedBase-speed) * time.Millisecond, nil
}

// SpeedForInterval is the inverse of IntervalForSpeed.
func SpeedForInterval(d time.Duration) int {
	return speedBase - int(d/time.Millisecond)
}

func ValidateInterval(d time.Duration) error {
	if d < MinInterval || d > MaxInterval {
		return fmt.Errorf("interval %v: %w", d, ErrIntervalRange)
	}
	return nil
}

// Loop is not safe for concurrent use; it belongs to a single event loop.
type Loop struct {
	state    State
	interval time.Duration
	seq      uint64
}

func New(interval time.Duration) (*Loop, error) {
	if err := ValidateInterval(interval); err != nil {
		return nil, err
	}
	return &Loop{interval: interval}, nil
}

func (l *Loop) State() State            { return l.state }
func (l *Loop) Running() bool           { return l.state == Running }
func (l *Loop) Interval() time.Duration { return l.interval }
func (l *Loop) Seq() uint64             { return l.seq }

// Start enters Running and returns the sequence the next tick must carry.
// Starting a running loop restarts its timer.
func (l *Loop) Start() uint64 {
	l.state = Running
	l.seq++
	return l.seq
}

// Stop enters Idle. Every tick scheduled before the call becomes stale.
func (l *Loop) Stop() {
	l.state = Idle
	l.seq++
}

// Toggle flips between Idle and Running. The returned sequence is only
// meaningful when the loop is now running.
func (l *Loop) Toggle() (uint64, bool) {
	if l.Running() {
		l.Stop()
		return l.seq, false
	}
	return l.Start(), true
}

// SetInterval changes the period. While running it returns a fresh sequence
// (restart=true) so the caller schedules the next tick with the new interval
// and the old timer's tick is dropped.
func (l *Loop) SetInterval(d time.Duration) (seq uint64, restart bool, err error) {
	if err := ValidateInterval(d); err != nil {
		return l.seq, false, err
	}
	l.interval = d
	if !l.Running() {
		return l.seq, false, nil
	}
	l.seq++
	return l.seq, true, nil
}

// Accept reports whether a tick stamped with seq should mutate the dataset.
func (l *Loop) Accept(seq uint64) bool {
	return l.state == Running && seq == l.seq
}
