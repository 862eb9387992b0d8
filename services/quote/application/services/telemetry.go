package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/voltdesk/services/quote/domain/models"
)

const instrumentationName = "github.com/ghuser/voltdesk/services/quote"

var tracer = otel.Tracer(instrumentationName)

// engineMetrics holds the OTel instruments shared by every quote service.
// Instruments come from the global MeterProvider, which is a no-op until
// telemetry.Setup installs the Prometheus exporter.
type engineMetrics struct {
	mutations metric.Int64Counter
	expired   metric.Int64Counter
}

func newEngineMetrics() *engineMetrics {
	meter := otel.Meter(instrumentationName)
	mutations, _ := meter.Int64Counter("voltdesk.quote.mutations",
		metric.WithDescription("Budget and material list operations by kind, operation and outcome"))
	expired, _ := meter.Int64Counter("voltdesk.quote.expired",
		metric.WithDescription("Budgets moved to EXPIRED by the expiry sweep"))
	return &engineMetrics{mutations: mutations, expired: expired}
}

// startSpan opens a span tagged with the aggregate kind.
func startSpan(ctx context.Context, kind models.Kind, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "quote."+op, trace.WithAttributes(
		attribute.String("quote.kind", kind.String()),
	))
}

// finish records the outcome on span and counter and ends the span.
func (m *engineMetrics) finish(ctx context.Context, span trace.Span, kind models.Kind, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind.String()),
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
	span.End()
}
