package postgres

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/catalog/domain/models"
	"github.com/ghuser/voltdesk/services/catalog/domain/repositories"
	"github.com/ghuser/voltdesk/services/catalog/infrastructure/persistence/postgres/db"
)

const maxPageSize = 100

func listParams(professionalID uuid.UUID, opts repositories.QueryOpts) db.ListParams {
	limit := opts.Limit
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	return db.ListParams{
		ProfessionalID: professionalID,
		Search:         opts.Search,
		Limit:          int32(limit),
		Offset:         int32(max(opts.Offset, 0)),
	}
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func clientRow(c *models.Client) db.Client {
	return db.Client{
		ID:             c.ID,
		ProfessionalID: c.ProfessionalID,
		Name:           c.Name,
		Email:          toNull(c.Email),
		Phone:          toNull(c.Phone),
		Document:       toNull(c.Document),
		Address:        toNull(c.Address),
		Notes:          toNull(c.Notes),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func rowToClient(row db.Client) *models.Client {
	return &models.Client{
		ID:             row.ID,
		ProfessionalID: row.ProfessionalID,
		ClientFields: models.ClientFields{
			Name:     row.Name,
			Email:    fromNull(row.Email),
			Phone:    fromNull(row.Phone),
			Document: fromNull(row.Document),
			Address:  fromNull(row.Address),
			Notes:    fromNull(row.Notes),
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func serviceRow(s *models.Service) db.Service {
	return db.Service{
		ID:             s.ID,
		ProfessionalID: s.ProfessionalID,
		Name:           s.Name,
		Description:    toNull(s.Description),
		Price:          s.Price,
		Unit:           s.Unit,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func rowToService(row db.Service) *models.Service {
	return &models.Service{Offering: models.Offering{
		ID:             row.ID,
		ProfessionalID: row.ProfessionalID,
		OfferingFields: models.OfferingFields{
			Name:        row.Name,
			Description: fromNull(row.Description),
			Price:       row.Price,
			Unit:        row.Unit,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}}
}

func materialRow(m *models.Material) db.Material {
	return db.Material{
		ID:             m.ID,
		ProfessionalID: m.ProfessionalID,
		Name:           m.Name,
		Description:    toNull(m.Description),
		Price:          m.Price,
		Unit:           m.Unit,
		Brand:          toNull(m.Brand),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func rowToMaterial(row db.Material) *models.Material {
	return &models.Material{
		Offering: models.Offering{
			ID:             row.ID,
			ProfessionalID: row.ProfessionalID,
			OfferingFields: models.OfferingFields{
				Name:        row.Name,
				Description: fromNull(row.Description),
				Price:       row.Price,
				Unit:        row.Unit,
			},
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Brand: fromNull(row.Brand),
	}
}
