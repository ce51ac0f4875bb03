package plot

import (
	"github.com/wandb/wandb/plotkit/internal/debounce"
	"github.com/wandb/wandb/plotkit/internal/observability"
)

// Pass reasons, also used as metric labels.
const (
	reasonResize     = "resize"
	reasonCollection = "collection"
	reasonValues     = "values"
	reasonForced     = "forced"
)

// UpdateScheduler coalesces invalidations into redraw passes.
//
// Resizes, collection changes and value changes each have their own
// debounce channel. Erasures requested between passes are de-duplicated so
// a series is erased at most once per pass.
type UpdateScheduler struct {
	resize     *debounce.Debouncer
	collection *debounce.Debouncer
	values     *debounce.Debouncer

	eraseQueue []*Series
	queued     map[*Series]struct{}

	metrics *Metrics
}

type schedulerActions struct {
	resize     func()
	collection func()
	values     func()
}

func newUpdateScheduler(
	opts DebounceOptions,
	dispatcher debounce.Dispatcher,
	actions schedulerActions,
	metrics *Metrics,
	logger *observability.CoreLogger,
) *UpdateScheduler {
	return &UpdateScheduler{
		resize: debounce.NewDebouncer(
			reasonResize, opts.Resize, dispatcher, actions.resize, logger),
		collection: debounce.NewDebouncer(
			reasonCollection, opts.Collection, dispatcher, actions.collection, logger),
		values: debounce.NewDebouncer(
			reasonValues, opts.Values, dispatcher, actions.values, logger),
		queued:  make(map[*Series]struct{}),
		metrics: metrics,
	}
}

func (s *UpdateScheduler) requestResize() {
	s.metrics.observeTrigger(reasonResize)
	s.resize.Trigger()
}

func (s *UpdateScheduler) requestCollection() {
	s.metrics.observeTrigger(reasonCollection)
	s.collection.Trigger()
}

func (s *UpdateScheduler) requestValues() {
	s.metrics.observeTrigger(reasonValues)
	s.values.Trigger()
}

// Pending reports whether any channel has a pass scheduled.
func (s *UpdateScheduler) Pending() bool {
	return s.resize.Pending() || s.collection.Pending() || s.values.Pending()
}

func (s *UpdateScheduler) queueErase(series ...*Series) {
	for _, ser := range series {
		if _, ok := s.queued[ser]; ok {
			continue
		}
		s.queued[ser] = struct{}{}
		s.eraseQueue = append(s.eraseQueue, ser)
	}
}

// drainErase returns the queued series in request order and empties the
// queue.
func (s *UpdateScheduler) drainErase() []*Series {
	out := s.eraseQueue
	s.eraseQueue = nil
	clear(s.queued)
	return out
}

func (s *UpdateScheduler) stop() {
	s.resize.Stop()
	s.collection.Stop()
	s.values.Stop()
}
