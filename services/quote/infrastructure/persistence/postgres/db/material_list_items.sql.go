package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const listMaterialListItems = `-- name: ListMaterialListItems :many
SELECT id, material_list_id, name, description, quantity, unit_price, total_price, unit,
       material_id, created_at, updated_at
FROM material_list_items
WHERE material_list_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListMaterialListItems(ctx context.Context, materialListID uuid.UUID) ([]MaterialListItem, error) {
	rows, err := q.db.QueryContext(ctx, listMaterialListItems, materialListID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MaterialListItem
	for rows.Next() {
		var i MaterialListItem
		if err := rows.Scan(
			&i.ID,
			&i.MaterialListID,
			&i.Name,
			&i.Description,
			&i.Quantity,
			&i.UnitPrice,
			&i.TotalPrice,
			&i.Unit,
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

const insertMaterialListItem = `-- name: InsertMaterialListItem :exec
INSERT INTO material_list_items (id, material_list_id, name, description, quantity, unit_price, total_price,
                                 unit, material_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type InsertMaterialListItemParams = MaterialListItem

func (q *Queries) InsertMaterialListItem(ctx context.Context, arg InsertMaterialListItemParams) error {
	_, err := q.db.ExecContext(ctx, insertMaterialListItem,
		arg.ID,
		arg.MaterialListID,
		arg.Name,
		arg.Description,
		arg.Quantity,
		arg.UnitPrice,
		arg.TotalPrice,
		arg.Unit,
		arg.MaterialID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateMaterialListItem = `-- name: UpdateMaterialListItem :execrows
UPDATE material_list_items
SET name        = $3,
    description = $4,
    quantity    = $5,
    unit_price  = $6,
    total_price = $7,
    unit        = $8,
    updated_at  = $9
WHERE id = $1 AND material_list_id = $2
`

type UpdateMaterialListItemParams struct {
	ID          uuid.UUID
	MaterialListID    uuid.UUID
	Name        string
	Description sql.NullString
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Unit        string
	UpdatedAt   time.Time
}

func (q *Queries) UpdateMaterialListItem(ctx context.Context, arg UpdateMaterialListItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateMaterialListItem,
		arg.ID,
		arg.MaterialListID,
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

const deleteMaterialListItem = `-- name: DeleteMaterialListItem :execrows
DELETE FROM material_list_items
WHERE id = $1 AND material_list_id = $2
`

type DeleteMaterialListItemParams struct {
	ID       uuid.UUID
	MaterialListID uuid.UUID
}

func (q *Queries) DeleteMaterialListItem(ctx context.Context, arg DeleteMaterialListItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMaterialListItem, arg.ID, arg.MaterialListID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
