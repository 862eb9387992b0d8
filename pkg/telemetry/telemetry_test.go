package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/voltdesk/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "voltdesk-test",
		ServiceVersion: "test",
		Environment:    "testing",
		OtelEndpoint:   "", // disabled
	}
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown")
	}
	if handler == nil {
		t.Fatal("expected non-nil metrics handler")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_MetricsHandlerServesPrometheusFormat(t *testing.T) {
	_, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	ct := rr.Header().Get("Content-Type")
	if !strings.Contains(ct, "text/plain") {
		t.Errorf("expected text/plain content-type, got %q", ct)
	}
}

func TestSetup_InstallsTraceContextPropagator(t *testing.T) {
	shutdown, _, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background()) //nolint:errcheck

	fields := otel.GetTextMapPropagator().Fields()
	found := false
	for _, f := range fields {
		if f == "traceparent" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected traceparent in propagator fields, got %v", fields)
	}
}

func TestHTTPMiddleware_StartsSpan(t *testing.T) {
	shutdown, _, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background()) //nolint:errcheck

	var recording bool
	h := HTTPMiddleware("voltdesk-test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recording = trace.SpanFromContext(r.Context()).SpanContext().IsValid()
		w.WriteHeader(http.StatusOK)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/budgets", http.NoBody))

	if !recording {
		t.Fatal("expected a valid span in handler context")
	}
}

func TestHTTPMiddleware_SpanNamedByRoutePattern(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	r := chi.NewRouter()
	r.Use(HTTPMiddleware("voltdesk-test"))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {})
	r.Route("/api", func(r chi.Router) {
		r.Get("/budgets/{id}", func(w http.ResponseWriter, _ *http.Request) {})
	})

	tests := []struct {
		path     string
		wantName string
	}{
		{"/api/budgets/0b6f5a52-3c1e-4d7a-9a57-1f2f1e0c9d11", "GET /api/budgets/{id}"},
		{"/api/budgets/7f0c1a3e-2b84-4b43-8f3e-5d2a6c9e7b20", "GET /api/budgets/{id}"},
		{"/unknown", "GET"},
		{"/health", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			before := len(rec.Ended())
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			ended := rec.Ended()
			if tt.wantName == "" {
				if len(ended) != before {
					t.Fatalf("expected no span for %s", tt.path)
				}
				return
			}
			if len(ended) != before+1 {
				t.Fatalf("expected one new span, got %d", len(ended)-before)
			}
			if got := ended[len(ended)-1].Name(); got != tt.wantName {
				t.Errorf("span name: got %q, want %q", got, tt.wantName)
			}
		})
	}
}

func TestSetupSentry_EmptyDSNNoop(t *testing.T) {
	if err := SetupSentry(baseConfig()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	// Without an initialized client this must not panic.
	CaptureError(context.Background(), errors.New("boom"))
}
