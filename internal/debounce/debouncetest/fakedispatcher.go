// Package debouncetest provides a virtual clock dispatcher for tests.
package debouncetest

import (
	"time"

	"github.com/wandb/wandb/plotkit/internal/debounce"
)

// FakeDispatcher runs scheduled callbacks when the test advances its clock.
//
// Callbacks run synchronously inside Advance, in order of due time and then
// scheduling order.
type FakeDispatcher struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	due     time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

var _ debounce.Dispatcher = &FakeDispatcher{}

func NewFakeDispatcher() *FakeDispatcher {
	return &FakeDispatcher{}
}

func (d *FakeDispatcher) AfterFunc(delay time.Duration, f func()) debounce.Timer {
	d.seq++
	t := &fakeTimer{due: d.now + delay, seq: d.seq, f: f}
	d.timers = append(d.timers, t)
	return t
}

// Now returns the time elapsed on the virtual clock.
func (d *FakeDispatcher) Now() time.Duration {
	return d.now
}

// Advance moves the clock forward, running every callback that becomes due.
func (d *FakeDispatcher) Advance(delta time.Duration) {
	target := d.now + delta

	for {
		next := d.nextDue(target)
		if next == nil {
			break
		}
		d.now = next.due
		next.fired = true
		next.f()
	}

	d.now = target
	d.compact()
}

// Pending returns the number of callbacks that have not run or been stopped.
func (d *FakeDispatcher) Pending() int {
	n := 0
	for _, t := range d.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (d *FakeDispatcher) nextDue(limit time.Duration) *fakeTimer {
	var next *fakeTimer
	for _, t := range d.timers {
		if t.stopped || t.fired || t.due > limit {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (d *FakeDispatcher) compact() {
	live := d.timers[:0]
	for _, t := range d.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	d.timers = live
}
