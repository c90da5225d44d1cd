package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "analytics:cards:failed_requests", Key("cards", EventFailedRequests))
	assert.Equal(t, "analytics:refresh:users_refreshed", Key("refresh", "users_refreshed"))
}

func TestPrometheusIncrement(t *testing.T) {
	p := NewPrometheus(prometheus.NewRegistry())

	p.Increment(Key("cards", EventSuccessfulRequests))
	p.Increment(Key("cards", EventSuccessfulRequests))
	p.Increment(Key("cards", EventCorruptedUserRecords))

	assert.Equal(t, 2.0, testutil.ToFloat64(p.events.WithLabelValues("cards", EventSuccessfulRequests)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.events.WithLabelValues("cards", EventCorruptedUserRecords)))
}

func TestPrometheusDropsMalformedKeys(t *testing.T) {
	p := NewPrometheus(prometheus.NewRegistry())

	// None of these may panic or create series
	p.Increment("")
	p.Increment("successful_requests")
	p.Increment("other:cards:successful_requests")
	p.Increment("analytics:cards:extra:parts")

	count := testutil.CollectAndCount(p.events)
	assert.Zero(t, count)
}

func TestNoop(t *testing.T) {
	// Must simply not panic
	Noop{}.Increment("analytics:cards:failed_requests")
	Noop{}.Increment("")
}
