package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/domain/models"
)

// Store is the unit-of-work gateway for the quote context. Do runs fn inside
// one transaction; any error returned by fn rolls everything back.
// The domain layer owns this interface; infrastructure implements it.
type Store interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the repositories bound to one transaction.
type Tx interface {
	Quotes(kind models.Kind) QuoteRepository
	Catalog() CatalogReader

	// CountDerived returns how many material lists reference budgetID.
	CountDerived(ctx context.Context, budgetID uuid.UUID) (int, error)

	// Publish enqueues an event that becomes visible only if the transaction commits.
	Publish(ctx context.Context, topic string, payload any) error
}

// ListFilter narrows List. Nil fields do not filter.
type ListFilter struct {
	Status   *models.Status
	ClientID *uuid.UUID
	BudgetID *uuid.UUID // material lists only
	Limit    int
	Offset   int
}

// QuoteRepository persists one kind of quote aggregate and its items.
// Reads scoped by professional return the kind's not-found error for records
// owned by someone else.
type QuoteRepository interface {
	// Get loads the aggregate without items. lock takes a row lock held until
	// the transaction ends.
	Get(ctx context.Context, professionalID, id uuid.UUID, lock bool) (*models.Quote, error)

	// GetForPublic loads by id alone; the caller verifies the access link.
	GetForPublic(ctx context.Context, id uuid.UUID, lock bool) (*models.Quote, error)

	// List returns one page and the total count ignoring pagination.
	List(ctx context.Context, professionalID uuid.UUID, f ListFilter) ([]*models.Quote, int, error)

	Insert(ctx context.Context, q *models.Quote) error
	Update(ctx context.Context, q *models.Quote) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Items returns every current item of quoteID ordered by creation.
	Items(ctx context.Context, quoteID uuid.UUID) ([]models.Item, error)
	InsertItem(ctx context.Context, it *models.Item) error
	UpdateItem(ctx context.Context, it *models.Item) error

	// DeleteItem fails with ErrItemNotFound unless itemID belongs to quoteID.
	DeleteItem(ctx context.Context, quoteID, itemID uuid.UUID) error

	// Overdue returns ids of PENDING aggregates whose ValidUntil is before asOf.
	Overdue(ctx context.Context, asOf time.Time, limit int) ([]uuid.UUID, error)
}

// ClientRef is the part of a client the quote context needs.
type ClientRef struct {
	ID   uuid.UUID
	Name string
}

// CatalogEntry is a service or material snapshot source.
type CatalogEntry struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Price       decimal.Decimal
	Unit        string
}

// CatalogReader resolves catalog references scoped by professional.
type CatalogReader interface {
	Client(ctx context.Context, professionalID, id uuid.UUID) (*ClientRef, error)
	Service(ctx context.Context, professionalID, id uuid.UUID) (*CatalogEntry, error)
	Material(ctx context.Context, professionalID, id uuid.UUID) (*CatalogEntry, error)
}
