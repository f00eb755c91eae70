// Package loop drives the periodic random perturbation of a dataset.
//
// [Loop] is the Idle/Running state machine used from an event loop: each
// Start or SetInterval hands out a new sequence number and a tick is only
// honoured if it carries the current one, so a stopped loop never mutates.
//
// [Runner] owns a dataset on its own goroutine and calls back after every
// tick; Stop returns only once that goroutine has exited.
package loop
