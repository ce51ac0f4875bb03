package plot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts redraw work.
//
// A nil *Metrics records nothing.
type Metrics struct {
	passes   *prometheus.CounterVec
	triggers *prometheus.CounterVec
	erased   prometheus.Counter
}

// NewMetrics creates the chart metrics and registers them with reg.
//
// A nil reg leaves the metrics unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plotkit",
			Name:      "redraw_passes_total",
			Help:      "Plot passes run, by what caused them.",
		}, []string{"reason"}),
		triggers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plotkit",
			Name:      "update_triggers_total",
			Help:      "Invalidations received, by update channel.",
		}, []string{"channel"}),
		erased: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "plotkit",
			Name:      "series_erased_total",
			Help:      "Series whose shapes were erased before replotting.",
		}),
	}
}

func (m *Metrics) observePass(reason string) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeTrigger(channel string) {
	if m == nil {
		return
	}
	m.triggers.WithLabelValues(channel).Inc()
}

func (m *Metrics) observeErase() {
	if m == nil {
		return
	}
	m.erased.Inc()
}

// Passes returns the pass counter for a reason. Used in tests.
func (m *Metrics) Passes(reason string) prometheus.Counter {
	return m.passes.WithLabelValues(reason)
}

// Triggers returns the trigger counter for a channel. Used in tests.
func (m *Metrics) Triggers(channel string) prometheus.Counter {
	return m.triggers.WithLabelValues(channel)
}

// Erased returns the series erase counter. Used in tests.
func (m *Metrics) Erased() prometheus.Counter {
	return m.erased
}
