package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicProfessionalRegistered is published once per successful registration.
const TopicProfessionalRegistered = "account.professional_registered"

// ProfessionalRegisteredEvent is published through the outbox in the same
// transaction that inserts the professional. The password hash never leaves
// the account context.
type ProfessionalRegisteredEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	Version        int       `json:"version"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Email          string    `json:"email"`
	OccurredAt     time.Time `json:"occurred_at"`
}
