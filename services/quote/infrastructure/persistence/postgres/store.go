package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/pkg/database"
	"github.com/ghuser/voltdesk/pkg/events"
	"github.com/ghuser/voltdesk/services/quote/domain"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
	"github.com/ghuser/voltdesk/services/quote/infrastructure/persistence/postgres/db"
)

// Store implements repositories.Store against PostgreSQL. Each Do call is one
// READ COMMITTED transaction; repositories lock aggregate rows with
// SELECT ... FOR UPDATE so concurrent mutations of one aggregate serialize.
type Store struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.Store = (*Store)(nil)

// NewStore returns a Store. Events published through a transaction go to the
// outbox of bus; a nil bus drops them.
func NewStore(database *database.Database, bus *events.EventBus) *Store {
	return &Store{db: database, bus: bus}
}

// Do runs fn in a transaction and commits when fn returns nil.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, tx repositories.Tx) error) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(ctx, &pgTx{tx: tx, q: db.New(tx), bus: s.bus})
	})
}

type pgTx struct {
	tx  *sql.Tx
	q   *db.Queries
	bus *events.EventBus
}

func (t *pgTx) Quotes(kind models.Kind) repositories.QuoteRepository {
	if kind == models.KindMaterialList {
		return &materialListRepository{q: t.q}
	}
	return &budgetRepository{q: t.q}
}

func (t *pgTx) Catalog() repositories.CatalogReader { return &catalogReader{q: t.q} }

func (t *pgTx) CountDerived(ctx context.Context, budgetID uuid.UUID) (int, error) {
	n, err := t.q.CountMaterialListsByBudget(ctx, uuid.NullUUID{UUID: budgetID, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("count material lists: %w", err)
	}
	return int(n), nil
}

func (t *pgTx) Publish(ctx context.Context, topic string, payload any) error {
	if t.bus == nil {
		return nil
	}
	return t.bus.PublishInTx(ctx, t.tx, topic, payload)
}

type catalogReader struct {
	q *db.Queries
}

func (c *catalogReader) Client(ctx context.Context, professionalID, id uuid.UUID) (*repositories.ClientRef, error) {
	name, err := c.q.GetClientName(ctx, db.GetClientNameParams{ID: id, ProfessionalID: professionalID})
	if err != nil {
		return nil, notFound(err, domain.ErrClientNotFound, "query client")
	}
	return &repositories.ClientRef{ID: id, Name: name}, nil
}

func (c *catalogReader) Service(ctx context.Context, professionalID, id uuid.UUID) (*repositories.CatalogEntry, error) {
	row, err := c.q.GetServiceEntry(ctx, db.GetCatalogEntryParams{ID: id, ProfessionalID: professionalID})
	if err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound, "query service")
	}
	return rowToCatalogEntry(row), nil
}

func (c *catalogReader) Material(ctx context.Context, professionalID, id uuid.UUID) (*repositories.CatalogEntry, error) {
	row, err := c.q.GetMaterialEntry(ctx, db.GetCatalogEntryParams{ID: id, ProfessionalID: professionalID})
	if err != nil {
		return nil, notFound(err, domain.ErrMaterialNotFound, "query material")
	}
	return rowToCatalogEntry(row), nil
}

// notFound maps sql.ErrNoRows to sentinel and wraps anything else.
func notFound(err, sentinel error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}

func rowToCatalogEntry(row db.CatalogEntry) *repositories.CatalogEntry {
	return &repositories.CatalogEntry{
		ID:          row.ID,
		Name:        row.Name,
		Description: fromNullString(row.Description),
		Price:       row.Price,
		Unit:        row.Unit,
	}
}
