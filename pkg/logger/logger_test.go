package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ghuser/voltdesk/pkg/config"
)

func newBufferLogger(buf *bytes.Buffer) Logger {
	return NewWithWriter(&config.Config{LogLevel: "debug", ServiceName: "voltdesk-test"}, buf)
}

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return tp
}

func parseLastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("failed to parse log line %q: %v", lines[len(lines)-1], err)
	}
	return m
}

func TestInfoContext_WithSpan(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	ctx, span := otel.Tracer("test").Start(context.Background(), "budget-span")
	defer span.End()

	log.InfoContext(ctx, "hello")

	entry := parseLastLine(t, &buf)
	if _, ok := entry["trace_id"]; !ok {
		t.Error("expected trace_id")
	}
	if _, ok := entry["span_id"]; !ok {
		t.Error("expected span_id")
	}
	if entry["service"] != "voltdesk-test" {
		t.Errorf("expected service attribute, got %v", entry["service"])
	}
}

func TestInfoContext_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	log.InfoContext(context.Background(), "no span")

	entry := parseLastLine(t, &buf)
	if _, ok := entry["trace_id"]; ok {
		t.Error("trace_id should not be present without an active span")
	}
}

func TestContextWithAttrs_Injected(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	ctx := ContextWithAttrs(context.Background(), "professional_id", "p-1")
	ctx = ContextWithAttrs(ctx, "budget_id", "b-9")
	log.ErrorContext(ctx, "add item failed", "error", errors.New("boom"))

	entry := parseLastLine(t, &buf)
	if entry["professional_id"] != "p-1" {
		t.Errorf("expected professional_id=p-1, got %v", entry["professional_id"])
	}
	if entry["budget_id"] != "b-9" {
		t.Errorf("expected budget_id=b-9, got %v", entry["budget_id"])
	}
	if entry["error"] == nil {
		t.Error("expected error field")
	}
}

func TestContextWithAttrs_DoesNotLeakBetweenContexts(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	base := ContextWithAttrs(context.Background(), "professional_id", "p-1")
	_ = ContextWithAttrs(base, "budget_id", "b-9")
	log.InfoContext(base, "list budgets")

	entry := parseLastLine(t, &buf)
	if _, ok := entry["budget_id"]; ok {
		t.Error("budget_id bound on a derived context must not appear on its parent")
	}
}

func TestMiddleware_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			log := newBufferLogger(&buf)

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(Middleware(log))
			r.Get("/budgets", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/budgets", http.NoBody))

			entry := parseLastLine(t, &buf)
			if entry["level"] != tt.wantLevel {
				t.Errorf("level: got %v, want %s", entry["level"], tt.wantLevel)
			}
			if _, ok := entry["request_id"]; !ok {
				t.Error("expected request_id in request log")
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("status: got %v, want %d", entry["status"], tt.status)
			}
		})
	}
}

func TestRecovery_Returns500(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	h := Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	entry := parseLastLine(t, &buf)
	if entry["msg"] != "panic recovered" {
		t.Errorf("unexpected message: %v", entry["msg"])
	}
}
