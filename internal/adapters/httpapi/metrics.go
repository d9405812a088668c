package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the engine counters exposed on /metrics.
type metrics struct {
	opens          *prometheus.CounterVec
	eventsAccepted *prometheus.CounterVec
	eventsRejected *prometheus.CounterVec
	completions    *prometheus.CounterVec
	restarts       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		opens: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "surveyflow_sessions_opened_total",
			Help: "Widget open calls, by survey.",
		}, []string{"survey"}),
		eventsAccepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "surveyflow_events_accepted_total",
			Help: "User events accepted by the interpreter, by survey.",
		}, []string{"survey"}),
		eventsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "surveyflow_events_rejected_total",
			Help: "User events rejected without mutating the session, by reason.",
		}, []string{"reason"}),
		completions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "surveyflow_sessions_completed_total",
			Help: "Sessions reaching a terminal state, by survey and status.",
		}, []string{"survey", "status"}),
		restarts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "surveyflow_sessions_restarted_total",
			Help: "Session restarts, by survey.",
		}, []string{"survey"}),
	}
}
