package main

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/voltdesk/pkg/app"
	"github.com/ghuser/voltdesk/pkg/events"
	"github.com/ghuser/voltdesk/pkg/logger"
	accountEvents "github.com/ghuser/voltdesk/services/account/domain/events"
	quoteEvents "github.com/ghuser/voltdesk/services/quote/domain/events"
)

// viewInvalidator drops cached public views.
type viewInvalidator interface {
	Delete(ctx context.Context, kind string, id uuid.UUID) error
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	handlers := map[string]events.Handler{
		accountEvents.TopicProfessionalRegistered: handleProfessionalRegistered(a.Logger),
	}
	onQuote := handleQuoteEvent(a.Views, a.Logger, newQuoteEventCounter())
	for _, topic := range quoteEvents.Topics {
		handlers[topic] = onQuote
	}

	topics := make([]string, 0, len(handlers))
	for topic, h := range handlers {
		errCh, err := a.EventBus.Subscribe(ctx, topic, h)
		if err != nil {
			return err
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
		topics = append(topics, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

func newQuoteEventCounter() metric.Int64Counter {
	c, _ := otel.Meter("github.com/ghuser/voltdesk/cmd/worker").Int64Counter("voltdesk.quote.events",
		metric.WithDescription("Quote events consumed by kind and status"))
	return c
}

// handleQuoteEvent keeps the public view cache honest after any committed
// quote change and counts the events. The API already invalidates after its
// own commits; this covers writes from other processes such as the expiry
// sweep. Handlers must be idempotent: EventBus retries up to 3x on failure.
func handleQuoteEvent(views viewInvalidator, log logger.Logger, counter metric.Int64Counter) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.Decode[quoteEvents.QuoteEvent](msg)
		if err != nil {
			return err
		}
		if evt.Version > quoteEvents.CurrentVersion {
			log.WarnContext(ctx, "skipping quote event from a newer schema", "version", evt.Version, "event_id", evt.EventID)
			return nil
		}
		if views != nil {
			if err := views.Delete(ctx, evt.Kind, evt.QuoteID); err != nil {
				return fmt.Errorf("invalidate public view %s/%s: %w", evt.Kind, evt.QuoteID, err)
			}
		}
		if counter != nil {
			counter.Add(ctx, 1, metric.WithAttributes(
				attribute.String("kind", evt.Kind),
				attribute.String("status", evt.Status),
				attribute.String("actor", evt.Actor),
			))
		}
		log.InfoContext(ctx, "quote event consumed",
			"kind", evt.Kind, "quote_id", evt.QuoteID, "status", evt.Status,
			"previous_status", evt.PreviousStatus, "actor", evt.Actor)
		return nil
	}
}

func handleProfessionalRegistered(log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.Decode[accountEvents.ProfessionalRegisteredEvent](msg)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "professional registered",
			"professional_id", evt.ProfessionalID, "event_id", evt.EventID)
		return nil
	}
}
