package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *MetricsService) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/results", http.StatusOK, 20*time.Millisecond)
	m.ObserveVote(VoteOutcomeAccepted)
	m.ObserveVote(VoteOutcomeAccepted)
	m.ObserveImport(ImportResultInserted, 3)
	m.ObserveImport(ImportResultSkipped, 0)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/results",status="200"} 1`)
	assert.Contains(t, body, `votes_cast_total{outcome="accepted"} 2`)
	assert.Contains(t, body, `students_imported_total{result="inserted"} 3`)
	assert.NotContains(t, body, `students_imported_total{result="skipped"}`)
	assert.Contains(t, body, "cache_hit_ratio 0.5")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.ObserveVote(VoteOutcomeError)
		m.ObserveImport(ImportResultFailed, 1)
		m.RecordCacheOperation(true, time.Millisecond)
		m.ObserveCacheWrite(time.Millisecond)
	})
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
