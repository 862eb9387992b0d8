package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const budgetColumns = `id, professional_id, client_id, name, notes, valid_until, subtotal, total_value,
       discount, discount_type, discount_reason, status, approved_at, rejected_at, rejection_reason,
       access_link, created_at, updated_at`

func scanBudget(row interface{ Scan(...interface{}) error }) (Budget, error) {
	var i Budget
	err := row.Scan(
		&i.ID,
		&i.ProfessionalID,
		&i.ClientID,
		&i.Name,
		&i.Notes,
		&i.ValidUntil,
		&i.Subtotal,
		&i.TotalValue,
		&i.Discount,
		&i.DiscountType,
		&i.DiscountReason,
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

const getBudget = `-- name: GetBudget :one
SELECT ` + budgetColumns + `
FROM budgets
WHERE id = $1 AND professional_id = $2
`

type GetBudgetParams struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
}

func (q *Queries) GetBudget(ctx context.Context, arg GetBudgetParams) (Budget, error) {
	return scanBudget(q.db.QueryRowContext(ctx, getBudget, arg.ID, arg.ProfessionalID))
}

const getBudgetForUpdate = `-- name: GetBudgetForUpdate :one
SELECT ` + budgetColumns + `
FROM budgets
WHERE id = $1 AND professional_id = $2
FOR UPDATE
`

func (q *Queries) GetBudgetForUpdate(ctx context.Context, arg GetBudgetParams) (Budget, error) {
	return scanBudget(q.db.QueryRowContext(ctx, getBudgetForUpdate, arg.ID, arg.ProfessionalID))
}

const getBudgetByID = `-- name: GetBudgetByID :one
SELECT ` + budgetColumns + `
FROM budgets
WHERE id = $1
`

func (q *Queries) GetBudgetByID(ctx context.Context, id uuid.UUID) (Budget, error) {
	return scanBudget(q.db.QueryRowContext(ctx, getBudgetByID, id))
}

const getBudgetByIDForUpdate = `-- name: GetBudgetByIDForUpdate :one
SELECT ` + budgetColumns + `
FROM budgets
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetBudgetByIDForUpdate(ctx context.Context, id uuid.UUID) (Budget, error) {
	return scanBudget(q.db.QueryRowContext(ctx, getBudgetByIDForUpdate, id))
}

const listBudgets = `-- name: ListBudgets :many
SELECT ` + budgetColumns + `
FROM budgets
WHERE professional_id = $1
  AND ($2::quote_status IS NULL OR status = $2)
  AND ($3::uuid IS NULL OR client_id = $3)
ORDER BY created_at DESC, id
LIMIT NULLIF($4::int, 0) OFFSET $5
`

type ListBudgetsParams struct {
	ProfessionalID uuid.UUID
	Status         sql.NullString
	ClientID       uuid.NullUUID
	Limit          int32
	Offset         int32
}

func (q *Queries) ListBudgets(ctx context.Context, arg ListBudgetsParams) ([]Budget, error) {
	rows, err := q.db.QueryContext(ctx, listBudgets,
		arg.ProfessionalID,
		arg.Status,
		arg.ClientID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Budget
	for rows.Next() {
		i, err := scanBudget(rows)
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

const countBudgets = `-- name: CountBudgets :one
SELECT count(*)
FROM budgets
WHERE professional_id = $1
  AND ($2::quote_status IS NULL OR status = $2)
  AND ($3::uuid IS NULL OR client_id = $3)
`

type CountBudgetsParams struct {
	ProfessionalID uuid.UUID
	Status         sql.NullString
	ClientID       uuid.NullUUID
}

func (q *Queries) CountBudgets(ctx context.Context, arg CountBudgetsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countBudgets, arg.ProfessionalID, arg.Status, arg.ClientID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertBudget = `-- name: InsertBudget :exec
INSERT INTO budgets (` + budgetColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`

type InsertBudgetParams = Budget

func (q *Queries) InsertBudget(ctx context.Context, arg InsertBudgetParams) error {
	_, err := q.db.ExecContext(ctx, insertBudget,
		arg.ID,
		arg.ProfessionalID,
		arg.ClientID,
		arg.Name,
		arg.Notes,
		arg.ValidUntil,
		arg.Subtotal,
		arg.TotalValue,
		arg.Discount,
		arg.DiscountType,
		arg.DiscountReason,
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

const updateBudget = `-- name: UpdateBudget :execrows
UPDATE budgets
SET client_id        = $2,
    name             = $3,
    notes            = $4,
    valid_until      = $5,
    subtotal         = $6,
    total_value      = $7,
    discount         = $8,
    discount_type    = $9,
    discount_reason  = $10,
    status           = $11,
    approved_at      = $12,
    rejected_at      = $13,
    rejection_reason = $14,
    updated_at       = $15
WHERE id = $1
`

type UpdateBudgetParams struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	Name            string
	Notes           sql.NullString
	ValidUntil      sql.NullTime
	Subtotal        decimal.Decimal
	TotalValue      decimal.Decimal
	Discount        decimal.NullDecimal
	DiscountType    sql.NullString
	DiscountReason  sql.NullString
	Status          string
	ApprovedAt      sql.NullTime
	RejectedAt      sql.NullTime
	RejectionReason sql.NullString
	UpdatedAt       time.Time
}

func (q *Queries) UpdateBudget(ctx context.Context, arg UpdateBudgetParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateBudget,
		arg.ID,
		arg.ClientID,
		arg.Name,
		arg.Notes,
		arg.ValidUntil,
		arg.Subtotal,
		arg.TotalValue,
		arg.Discount,
		arg.DiscountType,
		arg.DiscountReason,
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

const deleteBudget = `-- name: DeleteBudget :execrows
DELETE FROM budgets
WHERE id = $1
`

func (q *Queries) DeleteBudget(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteBudget, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listOverdueBudgetIDs = `-- name: ListOverdueBudgetIDs :many
SELECT id
FROM budgets
WHERE status = 'PENDING' AND valid_until < $1
ORDER BY valid_until
LIMIT $2
`

type ListOverdueBudgetIDsParams struct {
	AsOf  time.Time
	Limit int32
}

func (q *Queries) ListOverdueBudgetIDs(ctx context.Context, arg ListOverdueBudgetIDsParams) ([]uuid.UUID, error) {
	rows, err := q.db.QueryContext(ctx, listOverdueBudgetIDs, arg.AsOf, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countMaterialListsByBudget = `-- name: CountMaterialListsByBudget :one
SELECT count(*)
FROM material_lists
WHERE budget_id = $1
`

func (q *Queries) CountMaterialListsByBudget(ctx context.Context, budgetID uuid.NullUUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countMaterialListsByBudget, budgetID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
