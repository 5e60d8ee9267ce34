package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, r *Recorder) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestRecorderExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.ObserveComputation("qualification", 3*time.Millisecond, nil)
	r.ObserveComputation("qualification", time.Millisecond, errors.New("boom"))
	r.AddWarning("unknown_team")
	r.AddShortfall("direct")
	r.ObserveRequest("GET", "/api/playgrounds/{playgroundID}/standings", 200, 2*time.Millisecond)
	r.RateLimited()
	r.Published(nil)
	r.WatchWebSocketClients(func() int { return 4 })

	body := scrape(t, r)
	for _, want := range []string{
		`playground_standings_computation_seconds_count{operation="qualification"} 2`,
		`playground_standings_computation_errors_total{operation="qualification"} 1`,
		`playground_standings_data_warnings_total{kind="unknown_team"} 1`,
		`playground_qualification_shortfalls_total{bucket="direct"} 1`,
		`playground_http_request_duration_seconds_count{method="GET",route="/api/playgrounds/{playgroundID}/standings",status="200"} 1`,
		`playground_http_rate_limited_total 1`,
		`playground_published_documents_total{outcome="ok"} 1`,
		`playground_websocket_clients 4`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape is missing %q", want)
		}
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.ObserveComputation("standings", time.Millisecond, nil)
	r.AddWarning("x")
	r.AddShortfall("direct")
	r.ObserveRequest("GET", "", 200, time.Millisecond)
	r.RateLimited()
	r.Published(errors.New("x"))
	r.WatchWebSocketClients(func() int { return 1 })

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Fatalf("expected 404 from a nil recorder, got %d", rec.Code)
	}
}
