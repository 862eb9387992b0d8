package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/account/domain/models"
)

// ProfessionalRepository is the persistence interface for the Professional
// aggregate. The domain layer owns this interface; infrastructure implements it.
type ProfessionalRepository interface {
	// Save inserts p and publishes its registration event atomically.
	// Returns ErrEmailTaken when the address is already registered.
	Save(ctx context.Context, p *models.Professional) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Professional, error)
	GetByEmail(ctx context.Context, email models.Email) (*models.Professional, error)
}
