package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/pkg/database"
	"github.com/ghuser/voltdesk/services/quote/domain"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
	"github.com/ghuser/voltdesk/services/quote/infrastructure/persistence/postgres/db"
)

// materialListRepository implements repositories.QuoteRepository for
// material lists. Items never carry a service reference.
type materialListRepository struct {
	q *db.Queries
}

func (r *materialListRepository) Get(ctx context.Context, professionalID, id uuid.UUID, lock bool) (*models.Quote, error) {
	arg := db.GetMaterialListParams{ID: id, ProfessionalID: professionalID}
	get := r.q.GetMaterialList
	if lock {
		get = r.q.GetMaterialListForUpdate
	}
	row, err := get(ctx, arg)
	if err != nil {
		return nil, notFound(err, domain.ErrMaterialListNotFound, "query material list")
	}
	return rowToMaterialList(row), nil
}

func (r *materialListRepository) GetForPublic(ctx context.Context, id uuid.UUID, lock bool) (*models.Quote, error) {
	get := r.q.GetMaterialListByID
	if lock {
		get = r.q.GetMaterialListByIDForUpdate
	}
	row, err := get(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrMaterialListNotFound, "query material list")
	}
	return rowToMaterialList(row), nil
}

func (r *materialListRepository) List(ctx context.Context, professionalID uuid.UUID, f repositories.ListFilter) ([]*models.Quote, int, error) {
	rows, err := r.q.ListMaterialLists(ctx, db.ListMaterialListsParams{
		ProfessionalID: professionalID,
		Status:         nullStatus(f.Status),
		ClientID:       nullUUID(f.ClientID),
		BudgetID:       nullUUID(f.BudgetID),
		Limit:          int32(f.Limit),
		Offset:         int32(f.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query material lists: %w", err)
	}
	total, err := r.q.CountMaterialLists(ctx, db.CountMaterialListsParams{
		ProfessionalID: professionalID,
		Status:         nullStatus(f.Status),
		ClientID:       nullUUID(f.ClientID),
		BudgetID:       nullUUID(f.BudgetID),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("count material lists: %w", err)
	}

	out := make([]*models.Quote, len(rows))
	for i, row := range rows {
		out[i] = rowToMaterialList(row)
	}
	return out, int(total), nil
}

func (r *materialListRepository) Insert(ctx context.Context, q *models.Quote) error {
	err := r.q.InsertMaterialList(ctx, db.InsertMaterialListParams{
		ID:              q.ID,
		ProfessionalID:  q.ProfessionalID,
		ClientID:        q.ClientID,
		BudgetID:        nullUUID(q.BudgetID),
		Name:            q.Name,
		Notes:           nullString(q.Notes),
		Subtotal:        q.Subtotal,
		TotalValue:      q.TotalValue,
		Status:          q.Status.String(),
		ApprovedAt:      nullTime(q.ApprovedAt),
		RejectedAt:      nullTime(q.RejectedAt),
		RejectionReason: nullString(q.RejectionReason),
		AccessLink:      q.AccessLink,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	})
	if database.IsCode(err, database.CodeForeignKeyViolation) {
		return domain.ErrClientNotFound
	}
	return err
}

func (r *materialListRepository) Update(ctx context.Context, q *models.Quote) error {
	n, err := r.q.UpdateMaterialList(ctx, db.UpdateMaterialListParams{
		ID:              q.ID,
		ClientID:        q.ClientID,
		BudgetID:        nullUUID(q.BudgetID),
		Name:            q.Name,
		Notes:           nullString(q.Notes),
		Subtotal:        q.Subtotal,
		TotalValue:      q.TotalValue,
		Status:          q.Status.String(),
		ApprovedAt:      nullTime(q.ApprovedAt),
		RejectedAt:      nullTime(q.RejectedAt),
		RejectionReason: nullString(q.RejectionReason),
		UpdatedAt:       q.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrMaterialListNotFound
	}
	return nil
}

func (r *materialListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.q.DeleteMaterialList(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrMaterialListNotFound
	}
	return nil
}

func (r *materialListRepository) Items(ctx context.Context, quoteID uuid.UUID) ([]models.Item, error) {
	rows, err := r.q.ListMaterialListItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	items := make([]models.Item, len(rows))
	for i, row := range rows {
		items[i] = models.Item{
			ID:          row.ID,
			QuoteID:     row.MaterialListID,
			Name:        row.Name,
			Description: fromNullString(row.Description),
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			TotalPrice:  row.TotalPrice,
			Unit:        row.Unit,
			MaterialID:  fromNullUUID(row.MaterialID),
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		}
	}
	return items, nil
}

func (r *materialListRepository) InsertItem(ctx context.Context, it *models.Item) error {
	return r.q.InsertMaterialListItem(ctx, db.InsertMaterialListItemParams{
		ID:             it.ID,
		MaterialListID: it.QuoteID,
		Name:           it.Name,
		Description:    nullString(it.Description),
		Quantity:       it.Quantity,
		UnitPrice:      it.UnitPrice,
		TotalPrice:     it.TotalPrice,
		Unit:           it.Unit,
		MaterialID:     nullUUID(it.MaterialID),
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	})
}

func (r *materialListRepository) UpdateItem(ctx context.Context, it *models.Item) error {
	n, err := r.q.UpdateMaterialListItem(ctx, db.UpdateMaterialListItemParams{
		ID:             it.ID,
		MaterialListID: it.QuoteID,
		Name:           it.Name,
		Description:    nullString(it.Description),
		Quantity:       it.Quantity,
		UnitPrice:      it.UnitPrice,
		TotalPrice:     it.TotalPrice,
		Unit:           it.Unit,
		UpdatedAt:      it.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *materialListRepository) DeleteItem(ctx context.Context, quoteID, itemID uuid.UUID) error {
	n, err := r.q.DeleteMaterialListItem(ctx, db.DeleteMaterialListItemParams{ID: itemID, MaterialListID: quoteID})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Overdue is always empty: material lists carry no validity date.
func (r *materialListRepository) Overdue(context.Context, time.Time, int) ([]uuid.UUID, error) {
	return nil, nil
}

func rowToMaterialList(row db.MaterialList) *models.Quote {
	return &models.Quote{
		ID:             row.ID,
		Kind:           models.KindMaterialList,
		ProfessionalID: row.ProfessionalID,
		ClientID:       row.ClientID,
		BudgetID:       fromNullUUID(row.BudgetID),
		Name:           row.Name,
		Notes:          fromNullString(row.Notes),
		Totals:         models.Totals{Subtotal: row.Subtotal, TotalValue: row.TotalValue},
		Lifecycle:      lifecycle(row.Status, row.ApprovedAt, row.RejectedAt, row.RejectionReason),
		AccessLink:     row.AccessLink,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
