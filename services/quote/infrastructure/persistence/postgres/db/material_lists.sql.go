package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const materialListColumns = `id, professional_id, client_id, budget_id, name, notes, subtotal, total_value,
       status, approved_at, rejected_at, rejection_reason, access_link, created_at, updated_at`

func scanMaterialList(row interface{ Scan(...interface{}) error }) (MaterialList, error) {
	var i MaterialList
	err := row.Scan(
		&i.ID,
		&i.ProfessionalID,
		&i.ClientID,
		&i.BudgetID,
		&i.Name,
		&i.Notes,
		&i.Subtotal,
		&i.TotalValue,
		&i.Status,
		&i.ApprovedAt,
		&i.RejectedAt,
		&i.RejectionReason,
		&i.AccessLink,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getMaterialList = `-- name: GetMaterialList :one
SELECT ` + materialListColumns + `
FROM material_lists
WHERE id = $1 AND professional_id = $2
`

type GetMaterialListParams struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
}

func (q *Queries) GetMaterialList(ctx context.Context, arg GetMaterialListParams) (MaterialList, error) {
	return scanMaterialList(q.db.QueryRowContext(ctx, getMaterialList, arg.ID, arg.ProfessionalID))
}

const getMaterialListForUpdate = `-- name: GetMaterialListForUpdate :one
SELECT ` + materialListColumns + `
FROM material_lists
WHERE id = $1 AND professional_id = $2
FOR UPDATE
`

func (q *Queries) GetMaterialListForUpdate(ctx context.Context, arg GetMaterialListParams) (MaterialList, error) {
	return scanMaterialList(q.db.QueryRowContext(ctx, getMaterialListForUpdate, arg.ID, arg.ProfessionalID))
}

const getMaterialListByID = `-- name: GetMaterialListByID :one
SELECT ` + materialListColumns + `
FROM material_lists
WHERE id = $1
`

func (q *Queries) GetMaterialListByID(ctx context.Context, id uuid.UUID) (MaterialList, error) {
	return scanMaterialList(q.db.QueryRowContext(ctx, getMaterialListByID, id))
}

const getMaterialListByIDForUpdate = `-- name: GetMaterialListByIDForUpdate :one
SELECT ` + materialListColumns + `
FROM material_lists
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetMaterialListByIDForUpdate(ctx context.Context, id uuid.UUID) (MaterialList, error) {
	return scanMaterialList(q.db.QueryRowContext(ctx, getMaterialListByIDForUpdate, id))
}

const listMaterialLists = `-- name: ListMaterialLists :many
SELECT ` + materialListColumns + `
FROM material_lists
WHERE professional_id = $1
  AND ($2::quote_status IS NULL OR status = $2)
  AND ($3::uuid IS NULL OR client_id = $3)
  AND ($4::uuid IS NULL OR budget_id = $4)
ORDER BY created_at DESC, id
LIMIT NULLIF($5::int, 0) OFFSET $6
`

type ListMaterialListsParams struct {
	ProfessionalID uuid.UUID
	Status         sql.NullString
	ClientID       uuid.NullUUID
	BudgetID       uuid.NullUUID
	Limit          int32
	Offset         int32
}

func (q *Queries) ListMaterialLists(ctx context.Context, arg ListMaterialListsParams) ([]MaterialList, error) {
	rows, err := q.db.QueryContext(ctx, listMaterialLists,
		arg.ProfessionalID,
		arg.Status,
		arg.ClientID,
		arg.BudgetID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MaterialList
	for rows.Next() {
		i, err := scanMaterialList(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countMaterialLists = `-- name: CountMaterialLists :one
SELECT count(*)
FROM material_lists
WHERE professional_id = $1
  AND ($2::quote_status IS NULL OR status = $2)
  AND ($3::uuid IS NULL OR client_id = $3)
  AND ($4::uuid IS NULL OR budget_id = $4)
`

type CountMaterialListsParams struct {
	ProfessionalID uuid.UUID
	Status         sql.NullString
	ClientID       uuid.NullUUID
	BudgetID       uuid.NullUUID
}

func (q *Queries) CountMaterialLists(ctx context.Context, arg CountMaterialListsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countMaterialLists, arg.ProfessionalID, arg.Status, arg.ClientID, arg.BudgetID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertMaterialList = `-- name: InsertMaterialList :exec
INSERT INTO material_lists (` + materialListColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

type InsertMaterialListParams = MaterialList

func (q *Queries) InsertMaterialList(ctx context.Context, arg InsertMaterialListParams) error {
	_, err := q.db.ExecContext(ctx, insertMaterialList,
		arg.ID,
		arg.ProfessionalID,
		arg.ClientID,
		arg.BudgetID,
		arg.Name,
		arg.Notes,
		arg.Subtotal,
		arg.TotalValue,
		arg.Status,
		arg.ApprovedAt,
		arg.RejectedAt,
		arg.RejectionReason,
		arg.AccessLink,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateMaterialList = `-- name: UpdateMaterialList :execrows
UPDATE material_lists
SET client_id        = $2,
    budget_id        = $3,
    name             = $4,
    notes            = $5,
    subtotal         = $6,
    total_value      = $7,
    status           = $8,
    approved_at      = $9,
    rejected_at      = $10,
    rejection_reason = $11,
    updated_at       = $12
WHERE id = $1
`

type UpdateMaterialListParams struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	BudgetID        uuid.NullUUID
	Name            string
	Notes           sql.NullString
	Subtotal        decimal.Decimal
	TotalValue      decimal.Decimal
	Status          string
	ApprovedAt      sql.NullTime
	RejectedAt      sql.NullTime
	RejectionReason sql.NullString
	UpdatedAt       time.Time
}

func (q *Queries) UpdateMaterialList(ctx context.Context, arg UpdateMaterialListParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateMaterialList,
		arg.ID,
		arg.ClientID,
		arg.BudgetID,
		arg.Name,
		arg.Notes,
		arg.Subtotal,
		arg.TotalValue,
		arg.Status,
		arg.ApprovedAt,
		arg.RejectedAt,
		arg.RejectionReason,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteMaterialList = `-- name: DeleteMaterialList :execrows
DELETE FROM material_lists
WHERE id = $1
`

func (q *Queries) DeleteMaterialList(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMaterialList, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
