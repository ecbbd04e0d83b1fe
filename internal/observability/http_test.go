package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTraceMiddlewarePreservesIncomingTraceID(t *testing.T) {
	h := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := TraceIDFromContext(r.Context()); got != "trace-1" {
			t.Errorf("TraceIDFromContext() = %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", nil)
	req.Header.Set(traceHeader, "trace-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get(traceHeader); got != "trace-1" {
		t.Fatalf("trace header = %q", got)
	}
}

func TestTraceMiddlewareGeneratesUUIDTraceID(t *testing.T) {
	var seen string
	h := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	header := rr.Header().Get(traceHeader)
	if header == "" || header != seen {
		t.Fatalf("trace header = %q, context = %q", header, seen)
	}
	if _, err := uuid.Parse(header); err != nil {
		t.Fatalf("generated trace id %q is not a uuid: %v", header, err)
	}
}

func TestLoggingMiddlewareRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Observability.LogJSON = true
	logger := NewLogger(cfg, &buf)

	h := TraceMiddleware(LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	})))
	req := httptest.NewRequest(http.MethodPost, "/v1/respond", nil)
	req.Header.Set(traceHeader, "trace-9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log record: %v (%s)", err, buf.String())
	}
	for key, want := range map[string]any{
		"msg":      "http_request",
		"trace_id": "trace-9",
		"path":     "/v1/respond",
		"status":   float64(http.StatusAccepted),
		"bytes":    float64(2),
	} {
		if record[key] != want {
			t.Fatalf("record[%q] = %v, want %v", key, record[key], want)
		}
	}
}

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test", "418")
	before := testutil.ToFloat64(counter)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test", nil))
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("requests counter = %v, want %v", got, before+1)
	}
}

func TestTraceIDContextHelpers(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != "" {
		t.Fatalf("TraceIDFromContext(empty) = %q", got)
	}
	ctx := ContextWithTraceID(context.Background(), "abc123")
	if got := TraceIDFromContext(ctx); got != "abc123" {
		t.Fatalf("TraceIDFromContext() = %q", got)
	}
}
