package metrics

import (
	"testing"
	"time"

	"cofounder-match/internal/domain/ledger"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	assert.Same(t, m, New())

	before := testutil.ToFloat64(m.DecisionsTotal.WithLabelValues("like", "matched"))
	m.ObserveDecision(ledger.DecisionLike, "matched")
	assert.Equal(t, before+1, testutil.ToFloat64(m.DecisionsTotal.WithLabelValues("like", "matched")))

	created := testutil.ToFloat64(m.MatchesCreatedTotal)
	m.MatchCreated()
	assert.Equal(t, created+1, testutil.ToFloat64(m.MatchesCreatedTotal))

	m.ObserveQueueSize(12)
	m.ObserveHTTP("GET", "/api/v1/discovery", 200, 5*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/discovery", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveDecision(ledger.DecisionPass, "passed")
	m.MatchCreated()
	m.MatchRaceRecovered()
	m.ObserveQueueSize(1)
	m.ObserveHTTP("GET", "/", 200, time.Millisecond)
}
