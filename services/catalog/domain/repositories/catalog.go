package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/catalog/domain/models"
)

// QueryOpts contains search and pagination parameters for list queries.
type QueryOpts struct {
	Search string // case-insensitive name substring; empty matches all
	Limit  int
	Offset int
}

// Repository is the persistence interface shared by the catalog aggregates.
// Every method is scoped by professional; a row owned by someone else is
// reported as not found.
type Repository[T any] interface {
	Save(ctx context.Context, v *T) error
	GetByID(ctx context.Context, professionalID, id uuid.UUID) (*T, error)
	// List returns one page ordered by name plus the total count ignoring pagination.
	List(ctx context.Context, professionalID uuid.UUID, opts QueryOpts) ([]*T, int, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, professionalID, id uuid.UUID) error
}

type (
	ClientRepository   = Repository[models.Client]
	ServiceRepository  = Repository[models.Service]
	MaterialRepository = Repository[models.Material]
)
