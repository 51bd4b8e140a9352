package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNormalizedPath(t *testing.T) {
	got := normalizedPath("/api/v1/tests/123/check")
	want := "/api/v1/tests/{id}/check"
	if got != want {
		t.Fatalf("normalizedPath mismatch got=%s want=%s", got, want)
	}
}

func TestExtractTestID(t *testing.T) {
	raw := "/api/v1/tests/456/check"
	if id := extractTestID(normalizedPath(raw), raw); id != 456 {
		t.Fatalf("expected 456, got %d", id)
	}
	if id := extractTestID(normalizedPath("/healthz"), "/healthz"); id != 0 {
		t.Fatalf("expected 0 for non-test path, got %d", id)
	}
}

func TestMiddlewareRecordsMetricsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	c := NewCollector(prometheus.NewRegistry(), nil, zap.New(core))

	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/tests/77/check", nil))

	if logs.Len() != 1 {
		t.Fatalf("expected one request log, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["test_id"] != int64(77) || fields["status"] != int64(http.StatusNotFound) {
		t.Fatalf("unexpected log fields: %v", fields)
	}

	rec := httptest.NewRecorder()
	c.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	want := `worldtests_http_requests_total{method="POST",path="/api/v1/tests/{id}/check",status="404"} 1`
	if !strings.Contains(string(body), want) {
		t.Fatalf("metrics output missing %q:\n%s", want, body)
	}
}
