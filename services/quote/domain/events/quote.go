package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the quote context. All of them carry a
// QuoteEvent payload.
const (
	TopicQuoteCreated       = "quote.created"
	TopicQuoteUpdated       = "quote.updated"
	TopicQuoteStatusChanged = "quote.status_changed"
	TopicQuoteDeleted       = "quote.deleted"
)

// Topics lists every topic the quote context publishes.
var Topics = []string{TopicQuoteCreated, TopicQuoteUpdated, TopicQuoteStatusChanged, TopicQuoteDeleted}

// CurrentVersion is the schema version stamped on new events.
const CurrentVersion = 1

// Actor values identify who caused a change.
const (
	ActorProfessional = "professional"
	ActorClient       = "client"
	ActorSystem       = "system"
)

// QuoteEvent is published inside the mutating transaction through the outbox.
// Kind is "budget" or "material_list".
type QuoteEvent struct {
	EventID        uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version        int       `json:"version"`
	Kind           string    `json:"kind"`
	QuoteID        uuid.UUID `json:"quote_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Reason         *string   `json:"reason,omitempty"`
	Actor          string    `json:"actor"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewQuoteEvent stamps a fresh id, the current version and the time.
func NewQuoteEvent(kind string, quoteID, professionalID uuid.UUID, status, actor string, now time.Time) QuoteEvent {
	return QuoteEvent{
		EventID:        uuid.New(),
		Version:        CurrentVersion,
		Kind:           kind,
		QuoteID:        quoteID,
		ProfessionalID: professionalID,
		Status:         status,
		Actor:          actor,
		OccurredAt:     now.UTC(),
	}
}
