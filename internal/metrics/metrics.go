// Package metrics is the fire-and-forget analytics side channel.  Counter
// failures must never affect the primary response, so implementations swallow
// their own errors.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Analytics event names
const (
	EventSuccessfulRequests   = "successful_requests"
	EventFailedRequests       = "failed_requests"
	EventCorruptedUserRecords = "corrupted_user_records"
	EventCorruptedCardRecords = "corrupted_card_records"
)

// Key builds an analytics metric key: "analytics:{subsystem}:{event}"
func Key(subsystem, event string) string {
	return "analytics:" + subsystem + ":" + event
}

// Counter increments a named analytics metric.  Implementations are best-effort.
type Counter interface {
	Increment(key string)
}

// Prometheus backs the analytics counters with a Prometheus counter vector
type Prometheus struct {
	events *prometheus.CounterVec
}

// NewPrometheus registers the analytics counter vector on the given registerer
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anicards_analytics_events_total",
		Help: "Analytics events by subsystem and event type",
	}, []string{"subsystem", "event"})
	reg.MustRegister(events)
	return &Prometheus{events: events}
}

// Increment parses an "analytics:{subsystem}:{event}" key and bumps the matching
// series.  Malformed keys are dropped silently.
func (p *Prometheus) Increment(key string) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 || parts[0] != "analytics" {
		return
	}
	p.events.WithLabelValues(parts[1], parts[2]).Inc()
}

// Noop discards all increments.  Useful in tests.
type Noop struct{}

func (Noop) Increment(string) {}
