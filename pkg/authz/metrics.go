package authz

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "authz",
		Name:      "decisions_total",
		Help:      "Authorization decisions broken down by mode, object and result.",
	}, []string{"mode", "object", "result"})

	decisionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "authz",
		Name:      "decision_latency_seconds",
		Help:      "Latency distribution for authorization checks.",
		Buckets: []float64{
			0.00005, 0.0001, 0.0005, 0.001,
			0.005, 0.01, 0.05, 0.1,
		},
	}, []string{"mode", "result"})
)

func recordDecision(mode Mode, object string, allowed bool, latency time.Duration) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	decisions.WithLabelValues(string(mode), object, result).Inc()
	decisionLatency.WithLabelValues(string(mode), result).Observe(latency.Seconds())
}
