package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const listBudgetItems = `-- name: ListBudgetItems :many
SELECT id, budget_id, name, description, quantity, unit_price, total_price, unit,
       service_id, material_id, created_at, updated_at
FROM budget_items
WHERE budget_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListBudgetItems(ctx context.Context, budgetID uuid.UUID) ([]BudgetItem, error) {
	rows, err := q.db.QueryContext(ctx, listBudgetItems, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BudgetItem
	for rows.Next() {
		var i BudgetItem
		if err := rows.Scan(
			&i.ID,
			&i.BudgetID,
			&i.Name,
			&i.Description,
			&i.Quantity,
			&i.UnitPrice,
			&i.TotalPrice,
			&i.Unit,
			&i.ServiceID,
			&i.MaterialID,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
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

const insertBudgetItem = `-- name: InsertBudgetItem :exec
INSERT INTO budget_items (id, budget_id, name, description, quantity, unit_price, total_price, unit,
                          service_id, material_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

type InsertBudgetItemParams = BudgetItem

func (q *Queries) InsertBudgetItem(ctx context.Context, arg InsertBudgetItemParams) error {
	_, err := q.db.ExecContext(ctx, insertBudgetItem,
		arg.ID,
		arg.BudgetID,
		arg.Name,
		arg.Description,
		arg.Quantity,
		arg.UnitPrice,
		arg.TotalPrice,
		arg.Unit,
		arg.ServiceID,
		arg.MaterialID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateBudgetItem = `-- name: UpdateBudgetItem :execrows
UPDATE budget_items
SET name        = $3,
    description = $4,
    quantity    = $5,
    unit_price  = $6,
    total_price = $7,
    unit        = $8,
    updated_at  = $9
WHERE id = $1 AND budget_id = $2
`

type UpdateBudgetItemParams struct {
	ID          uuid.UUID
	BudgetID    uuid.UUID
	Name        string
	Description sql.NullString
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Unit        string
	UpdatedAt   time.Time
}

func (q *Queries) UpdateBudgetItem(ctx context.Context, arg UpdateBudgetItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateBudgetItem,
		arg.ID,
		arg.BudgetID,
		arg.Name,
		arg.Description,
		arg.Quantity,
		arg.UnitPrice,
		arg.TotalPrice,
		arg.Unit,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteBudgetItem = `-- name: DeleteBudgetItem :execrows
DELETE FROM budget_items
WHERE id = $1 AND budget_id = $2
`

type DeleteBudgetItemParams struct {
	ID       uuid.UUID
	BudgetID uuid.UUID
}

func (q *Queries) DeleteBudgetItem(ctx context.Context, arg DeleteBudgetItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteBudgetItem, arg.ID, arg.BudgetID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
