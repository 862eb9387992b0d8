package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/pkg/database"
	"github.com/ghuser/voltdesk/pkg/events"
	accountdomain "github.com/ghuser/voltdesk/services/account/domain"
	domainevents "github.com/ghuser/voltdesk/services/account/domain/events"
	"github.com/ghuser/voltdesk/services/account/domain/models"
	"github.com/ghuser/voltdesk/services/account/domain/repositories"
	"github.com/ghuser/voltdesk/services/account/infrastructure/persistence/postgres/db"
)

// ProfessionalRepository implements repositories.ProfessionalRepository
// against PostgreSQL.
type ProfessionalRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.ProfessionalRepository = (*ProfessionalRepository)(nil)

// NewProfessionalRepository returns a ProfessionalRepository. The bus
// receives a ProfessionalRegisteredEvent for every Save; a nil bus skips it.
func NewProfessionalRepository(database *database.Database, bus *events.EventBus) *ProfessionalRepository {
	return &ProfessionalRepository{db: database, bus: bus}
}

// Save persists p and publishes the registration event within the same
// transaction. Returns ErrEmailTaken on the unique email index.
func (r *ProfessionalRepository) Save(ctx context.Context, p *models.Professional) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertProfessional(ctx, db.InsertProfessionalParams{
			ID:           p.ID,
			Name:         p.Name,
			Email:        p.Email.String(),
			PasswordHash: p.PasswordHash,
			Phone:        toNullString(p.Phone),
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		}); err != nil {
			if database.IsCode(err, database.CodeUniqueViolation) {
				return accountdomain.ErrEmailTaken
			}
			return fmt.Errorf("insert professional: %w", err)
		}

		if r.bus == nil {
			return nil
		}
		evt := domainevents.ProfessionalRegisteredEvent{
			EventID:        uuid.New(),
			Version:        1,
			ProfessionalID: p.ID,
			Email:          p.Email.String(),
			OccurredAt:     p.CreatedAt,
		}
		if err := r.bus.PublishInTx(ctx, tx, domainevents.TopicProfessionalRegistered, evt); err != nil {
			return fmt.Errorf("publish professional registered: %w", err)
		}
		return nil
	})
}

// GetByID returns ErrProfessionalNotFound if no row matches.
func (r *ProfessionalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Professional, error) {
	row, err := db.New(r.db.DB()).GetProfessionalByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "query professional")
	}
	return rowToProfessional(row), nil
}

// GetByEmail matches case-insensitively. Returns ErrProfessionalNotFound if
// no row matches.
func (r *ProfessionalRepository) GetByEmail(ctx context.Context, email models.Email) (*models.Professional, error) {
	row, err := db.New(r.db.DB()).GetProfessionalByEmail(ctx, email.String())
	if err != nil {
		return nil, mapNotFound(err, "query professional by email")
	}
	return rowToProfessional(row), nil
}

func mapNotFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return accountdomain.ErrProfessionalNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// rowToProfessional maps a db.Professional to a domain models.Professional.
func rowToProfessional(row db.Professional) *models.Professional {
	p := &models.Professional{
		ID:           row.ID,
		Name:         row.Name,
		Email:        models.Email(row.Email),
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.Phone.Valid {
		p.Phone = &row.Phone.String
	}
	return p
}
