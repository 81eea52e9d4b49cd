package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterLogins             *prometheus.CounterVec
	CounterEvents             *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterRateLimited        prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("bloglist", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("bloglist", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterLogins := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "logins",
		Help:      "The total number of login attempts",
	}, []string{"result"})
	counterEvents := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "activity_events",
		Help:      "The total number of consumed activity events",
	}, []string{"type"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimited := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited",
		Help:      "The total number of requests rejected by the rate limiter",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.0005, 0.001, 0.005, 0.01,
				0.05, 0.1, 0.25, 0.5, 1, 2.5, 10,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterLogins:             counterLogins,
		CounterEvents:             counterEvents,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		CounterRateLimited:        counterRateLimited,
		GaugeRequests:             gaugeRequests,
		HistRequestDuration:       histReqDuration,
	}
}

// RecordEvent implements activityservice.Recorder.
func (m *Manager) RecordEvent(eventType string) {
	m.CounterEvents.WithLabelValues(eventType).Inc()
}

// RecordLogin counts a login attempt as "success" or "failure".
func (m *Manager) RecordLogin(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.CounterLogins.WithLabelValues(result).Inc()
}
