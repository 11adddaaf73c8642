package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCandidate(t *testing.T) {
	before := testutil.ToFloat64(candidatesScored.WithLabelValues(OutcomeFallback))

	RecordCandidate(OutcomeFallback)
	RecordCandidate(OutcomeFallback)

	after := testutil.ToFloat64(candidatesScored.WithLabelValues(OutcomeFallback))
	assert.Equal(t, before+2, after)
}

func TestRecordRankingRead(t *testing.T) {
	hitBefore := testutil.ToFloat64(rankingReads.WithLabelValues("curve", "hit"))
	missBefore := testutil.ToFloat64(rankingReads.WithLabelValues("curve", "miss"))

	RecordRankingRead("curve", true, 10)
	RecordRankingRead("curve", false, 10)

	assert.Equal(t, hitBefore+1, testutil.ToFloat64(rankingReads.WithLabelValues("curve", "hit")))
	assert.Equal(t, missBefore+1, testutil.ToFloat64(rankingReads.WithLabelValues("curve", "miss")))
}

func TestRecordHTTPRequest(t *testing.T) {
	route := "/api/project/list"
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", route, "4xx"))

	RecordHTTPRequest("GET", route, 404, 0.01)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", route, "4xx")))
	assert.Equal(t, "5xx", statusClass(503))
	assert.Equal(t, "2xx", statusClass(202))
}
