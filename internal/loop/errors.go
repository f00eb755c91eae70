package loop

import "errors"

var (
	// ErrIntervalRange indicates an interval outside [MinInterval, MaxInterval].
	ErrIntervalRange = errors.New("loop: interval out of range")

	// ErrSpeedRange indicates a speed outside [MinSpeed, MaxSpeed].
	ErrSpeedRange = errors.New("loop: speed out of range")

	// ErrRunning indicates Run was called on a runner that is already running.
	ErrRunning = errors.New("loop: runner already running")
)
