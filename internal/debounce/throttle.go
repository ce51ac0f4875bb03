package debounce

import (
	"golang.org/x/time/rate"
)

// Throttle is a rate limiter for high-frequency input such as pointer motion.
//
// Callers mark that work is needed with SetNeedsRun and then call Run on each
// event; the work runs only as often as the limiter allows. Flush runs
// outstanding work unconditionally.
type Throttle struct {
	limiter  *rate.Limiter
	needsRun bool
	finished bool
}

func NewThrottle(eventRate rate.Limit, burstSize int) *Throttle {
	return &Throttle{limiter: rate.NewLimiter(eventRate, burstSize)}
}

func (t *Throttle) SetNeedsRun() {
	if t == nil {
		return
	}
	t.needsRun = true
}

// NeedsRun reports whether work is outstanding.
func (t *Throttle) NeedsRun() bool {
	return t != nil && t.needsRun
}

// Run calls f if work is outstanding and the rate limiter allows it.
func (t *Throttle) Run(f func()) {
	if t == nil || t.finished {
		return
	}
	if !t.needsRun || !t.limiter.Allow() {
		return
	}
	t.Flush(f)
}

// Flush calls f if work is outstanding.
func (t *Throttle) Flush(f func()) {
	if t == nil || t.finished || !t.needsRun {
		return
	}
	t.needsRun = false
	f()
}

// Stop makes all future operations no-ops.
func (t *Throttle) Stop() {
	t.finished = true
}
