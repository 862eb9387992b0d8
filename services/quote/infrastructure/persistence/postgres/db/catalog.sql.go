package db

import (
	"context"

	"github.com/google/uuid"
)

const getClientName = `-- name: GetClientName :one
SELECT name
FROM clients
WHERE id = $1 AND professional_id = $2
`

type GetClientNameParams struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
}

func (q *Queries) GetClientName(ctx context.Context, arg GetClientNameParams) (string, error) {
	row := q.db.QueryRowContext(ctx, getClientName, arg.ID, arg.ProfessionalID)
	var name string
	err := row.Scan(&name)
	return name, err
}

const getServiceEntry = `-- name: GetServiceEntry :one
SELECT id, name, description, price, unit
FROM services
WHERE id = $1 AND professional_id = $2
`

type GetCatalogEntryParams struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
}

func (q *Queries) GetServiceEntry(ctx context.Context, arg GetCatalogEntryParams) (CatalogEntry, error) {
	row := q.db.QueryRowContext(ctx, getServiceEntry, arg.ID, arg.ProfessionalID)
	var i CatalogEntry
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Price, &i.Unit)
	return i, err
}

const getMaterialEntry = `-- name: GetMaterialEntry :one
SELECT id, name, description, price, unit
FROM materials
WHERE id = $1 AND professional_id = $2
`

func (q *Queries) GetMaterialEntry(ctx context.Context, arg GetCatalogEntryParams) (CatalogEntry, error) {
	row := q.db.QueryRowContext(ctx, getMaterialEntry, arg.ID, arg.ProfessionalID)
	var i CatalogEntry
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Price, &i.Unit)
	return i, err
}
