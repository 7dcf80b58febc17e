package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandlerExposesUpstreamCounters(t *testing.T) {
	ObserveUpstream(http.MethodGet, http.StatusOK, 15*time.Millisecond)
	ObserveUpstream(http.MethodPost, 0, time.Second)
	ObserveHTTP(http.MethodGet, http.StatusNotFound, time.Millisecond)

	recorder := httptest.NewRecorder()
	Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := recorder.Body.String()
	for _, want := range []string{
		`peladeiro_upstream_requests_total{method="GET",status="200"}`,
		`peladeiro_upstream_requests_total{method="POST",status="error"}`,
		`peladeiro_http_requests_total{method="GET",status="404"}`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics output to contain %s", want)
		}
	}
}
