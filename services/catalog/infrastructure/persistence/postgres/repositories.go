package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/pkg/database"
	catalogdomain "github.com/ghuser/voltdesk/services/catalog/domain"
	"github.com/ghuser/voltdesk/services/catalog/domain/models"
	"github.com/ghuser/voltdesk/services/catalog/domain/repositories"
	"github.com/ghuser/voltdesk/services/catalog/infrastructure/persistence/postgres/db"
)

var (
	_ repositories.ClientRepository   = (*ClientRepository)(nil)
	_ repositories.ServiceRepository  = (*ServiceRepository)(nil)
	_ repositories.MaterialRepository = (*MaterialRepository)(nil)
)

// ClientRepository implements repositories.ClientRepository against PostgreSQL.
type ClientRepository struct {
	db *database.Database
}

func NewClientRepository(database *database.Database) *ClientRepository {
	return &ClientRepository{db: database}
}

func (r *ClientRepository) Save(ctx context.Context, c *models.Client) error {
	if err := db.New(r.db.DB()).InsertClient(ctx, clientRow(c)); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, professionalID, id uuid.UUID) (*models.Client, error) {
	row, err := db.New(r.db.DB()).GetClient(ctx, db.ByIDParams{ID: id, ProfessionalID: professionalID})
	if err != nil {
		return nil, notFound(err, catalogdomain.ErrClientNotFound, "query client")
	}
	return rowToClient(row), nil
}

func (r *ClientRepository) List(ctx context.Context, professionalID uuid.UUID, opts repositories.QueryOpts) ([]*models.Client, int, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListClients(ctx, listParams(professionalID, opts))
	if err != nil {
		return nil, 0, fmt.Errorf("query clients: %w", err)
	}
	total, err := q.CountClients(ctx, db.CountParams{ProfessionalID: professionalID, Search: opts.Search})
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}
	out := make([]*models.Client, len(rows))
	for i, row := range rows {
		out[i] = rowToClient(row)
	}
	return out, int(total), nil
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	n, err := db.New(r.db.DB()).UpdateClient(ctx, clientRow(c))
	return affected(n, err, catalogdomain.ErrClientNotFound, "update client")
}

// Delete returns ErrClientInUse when budgets or material lists still
// reference the client.
func (r *ClientRepository) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	n, err := db.New(r.db.DB()).DeleteClient(ctx, db.ByIDParams{ID: id, ProfessionalID: professionalID})
	if database.IsCode(err, database.CodeForeignKeyViolation) {
		return catalogdomain.ErrClientInUse
	}
	return affected(n, err, catalogdomain.ErrClientNotFound, "delete client")
}

// ServiceRepository implements repositories.ServiceRepository against PostgreSQL.
type ServiceRepository struct {
	db *database.Database
}

func NewServiceRepository(database *database.Database) *ServiceRepository {
	return &ServiceRepository{db: database}
}

func (r *ServiceRepository) Save(ctx context.Context, s *models.Service) error {
	if err := db.New(r.db.DB()).InsertService(ctx, serviceRow(s)); err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, professionalID, id uuid.UUID) (*models.Service, error) {
	row, err := db.New(r.db.DB()).GetService(ctx, db.ByIDParams{ID: id, ProfessionalID: professionalID})
	if err != nil {
		return nil, notFound(err, catalogdomain.ErrServiceNotFound, "query service")
	}
	return rowToService(row), nil
}

func (r *ServiceRepository) List(ctx context.Context, professionalID uuid.UUID, opts repositories.QueryOpts) ([]*models.Service, int, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListServices(ctx, listParams(professionalID, opts))
	if err != nil {
		return nil, 0, fmt.Errorf("query services: %w", err)
	}
	total, err := q.CountServices(ctx, db.CountParams{ProfessionalID: professionalID, Search: opts.Search})
	if err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}
	out := make([]*models.Service, len(rows))
	for i, row := range rows {
		out[i] = rowToService(row)
	}
	return out, int(total), nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *models.Service) error {
	n, err := db.New(r.db.DB()).UpdateService(ctx, serviceRow(s))
	return affected(n, err, catalogdomain.ErrServiceNotFound, "update service")
}

func (r *ServiceRepository) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	n, err := db.New(r.db.DB()).DeleteService(ctx, db.ByIDParams{ID: id, ProfessionalID: professionalID})
	return affected(n, err, catalogdomain.ErrServiceNotFound, "delete service")
}

// MaterialRepository implements repositories.MaterialRepository against PostgreSQL.
type MaterialRepository struct {
	db *database.Database
}

func NewMaterialRepository(database *database.Database) *MaterialRepository {
	return &MaterialRepository{db: database}
}

func (r *MaterialRepository) Save(ctx context.Context, m *models.Material) error {
	if err := db.New(r.db.DB()).InsertMaterial(ctx, materialRow(m)); err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *MaterialRepository) GetByID(ctx context.Context, professionalID, id uuid.UUID) (*models.Material, error) {
	row, err := db.New(r.db.DB()).GetMaterial(ctx, db.ByIDParams{ID: id, ProfessionalID: professionalID})
	if err != nil {
		return nil, notFound(err, catalogdomain.ErrMaterialNotFound, "query material")
	}
	return rowToMaterial(row), nil
}

func (r *MaterialRepository) List(ctx context.Context, professionalID uuid.UUID, opts repositories.QueryOpts) ([]*models.Material, int, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListMaterials(ctx, listParams(professionalID, opts))
	if err != nil {
		return nil, 0, fmt.Errorf("query materials: %w", err)
	}
	total, err := q.CountMaterials(ctx, db.CountParams{ProfessionalID: professionalID, Search: opts.Search})
	if err != nil {
		return nil, 0, fmt.Errorf("count materials: %w", err)
	}
	out := make([]*models.Material, len(rows))
	for i, row := range rows {
		out[i] = rowToMaterial(row)
	}
	return out, int(total), nil
}

func (r *MaterialRepository) Update(ctx context.Context, m *models.Material) error {
	n, err := db.New(r.db.DB()).UpdateMaterial(ctx, materialRow(m))
	return affected(n, err, catalogdomain.ErrMaterialNotFound, "update material")
}

func (r *MaterialRepository) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	n, err := db.New(r.db.DB()).DeleteMaterial(ctx, db.ByIDParams{ID: id, ProfessionalID: professionalID})
	return affected(n, err, catalogdomain.ErrMaterialNotFound, "delete material")
}

func notFound(err, sentinel error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affected maps an :execrows result: zero rows means the id was not found
// for this professional.
func affected(n int64, err, sentinel error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return sentinel
	}
	return nil
}
