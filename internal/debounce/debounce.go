// Package debounce coalesces bursts of events into a single action.
package debounce

import (
	"fmt"
	"time"

	"github.com/wandb/wandb/plotkit/internal/observability"
)

// Timer is a scheduled callback that can be canceled.
type Timer interface {
	// Stop prevents the callback from running.
	//
	// Returns false if the callback already ran or was stopped.
	Stop() bool
}

// Dispatcher schedules callbacks on the goroutine that owns the caller's
// state.
//
// Implementations must never run a callback concurrently with other
// callbacks or with the code that scheduled it.
type Dispatcher interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Debouncer runs an action once a burst of triggers has been quiet for a
// fixed delay.
//
// Each Trigger cancels the previously scheduled run. A Debouncer is not safe
// for concurrent use; it must be used from the dispatcher's goroutine.
type Debouncer struct {
	name       string
	delay      time.Duration
	dispatcher Dispatcher
	action     func()
	logger     *observability.CoreLogger

	timer    Timer
	pending  bool
	finished bool

	// generation identifies the latest scheduled run so that callbacks from
	// stopped timers that still fire are ignored.
	generation uint64
}

func NewDebouncer(
	name string,
	delay time.Duration,
	dispatcher Dispatcher,
	action func(),
	logger *observability.CoreLogger,
) *Debouncer {
	return &Debouncer{
		name:       name,
		delay:      delay,
		dispatcher: dispatcher,
		action:     action,
		logger:     logger,
	}
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	if d == nil || d.finished {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.generation++
	generation := d.generation
	d.pending = true
	d.timer = d.dispatcher.AfterFunc(d.delay, func() { d.fire(generation) })
}

func (d *Debouncer) fire(generation uint64) {
	if d.finished || !d.pending || generation != d.generation {
		return
	}

	d.pending = false
	d.timer = nil
	d.logger.Debug(fmt.Sprintf("debounce: %s: firing", d.name))
	d.action()
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	return d != nil && d.pending
}

// Cancel drops the scheduled run, if any.
func (d *Debouncer) Cancel() {
	if d == nil || !d.pending {
		return
	}

	d.pending = false
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush runs the scheduled action immediately, if any.
func (d *Debouncer) Flush() {
	if d == nil || d.finished || !d.pending {
		return
	}

	d.Cancel()
	d.action()
}

// Stop cancels any scheduled run and makes all future triggers no-ops.
func (d *Debouncer) Stop() {
	if d == nil {
		return
	}
	d.Cancel()
	d.finished = true
}
