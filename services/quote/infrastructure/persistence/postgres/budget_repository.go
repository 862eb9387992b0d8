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

// budgetRepository implements repositories.QuoteRepository for budgets.
type budgetRepository struct {
	q *db.Queries
}

func (r *budgetRepository) Get(ctx context.Context, professionalID, id uuid.UUID, lock bool) (*models.Quote, error) {
	arg := db.GetBudgetParams{ID: id, ProfessionalID: professionalID}
	get := r.q.GetBudget
	if lock {
		get = r.q.GetBudgetForUpdate
	}
	row, err := get(ctx, arg)
	if err != nil {
		return nil, notFound(err, domain.ErrBudgetNotFound, "query budget")
	}
	return rowToBudget(row), nil
}

func (r *budgetRepository) GetForPublic(ctx context.Context, id uuid.UUID, lock bool) (*models.Quote, error) {
	get := r.q.GetBudgetByID
	if lock {
		get = r.q.GetBudgetByIDForUpdate
	}
	row, err := get(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrBudgetNotFound, "query budget")
	}
	return rowToBudget(row), nil
}

func (r *budgetRepository) List(ctx context.Context, professionalID uuid.UUID, f repositories.ListFilter) ([]*models.Quote, int, error) {
	rows, err := r.q.ListBudgets(ctx, db.ListBudgetsParams{
		ProfessionalID: professionalID,
		Status:         nullStatus(f.Status),
		ClientID:       nullUUID(f.ClientID),
		Limit:          int32(f.Limit),
		Offset:         int32(f.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query budgets: %w", err)
	}
	total, err := r.q.CountBudgets(ctx, db.CountBudgetsParams{
		ProfessionalID: professionalID,
		Status:         nullStatus(f.Status),
		ClientID:       nullUUID(f.ClientID),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("count budgets: %w", err)
	}

	out := make([]*models.Quote, len(rows))
	for i, row := range rows {
		out[i] = rowToBudget(row)
	}
	return out, int(total), nil
}

func (r *budgetRepository) Insert(ctx context.Context, q *models.Quote) error {
	discount, discountType, discountReason := discountColumns(q.Discount)
	err := r.q.InsertBudget(ctx, db.InsertBudgetParams{
		ID:              q.ID,
		ProfessionalID:  q.ProfessionalID,
		ClientID:        q.ClientID,
		Name:            q.Name,
		Notes:           nullString(q.Notes),
		ValidUntil:      nullTime(q.ValidUntil),
		Subtotal:        q.Subtotal,
		TotalValue:      q.TotalValue,
		Discount:        discount,
		DiscountType:    discountType,
		DiscountReason:  discountReason,
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

func (r *budgetRepository) Update(ctx context.Context, q *models.Quote) error {
	discount, discountType, discountReason := discountColumns(q.Discount)
	n, err := r.q.UpdateBudget(ctx, db.UpdateBudgetParams{
		ID:              q.ID,
		ClientID:        q.ClientID,
		Name:            q.Name,
		Notes:           nullString(q.Notes),
		ValidUntil:      nullTime(q.ValidUntil),
		Subtotal:        q.Subtotal,
		TotalValue:      q.TotalValue,
		Discount:        discount,
		DiscountType:    discountType,
		DiscountReason:  discountReason,
		Status:          q.Status.String(),
		ApprovedAt:      nullTime(q.ApprovedAt),
		RejectedAt:      nullTime(q.RejectedAt),
		RejectionReason: nullString(q.RejectionReason),
		UpdatedAt:       q.UpdatedAt,
	})
	if err != nil {
		if database.IsCode(err, database.CodeForeignKeyViolation) {
			return domain.ErrClientNotFound
		}
		return err
	}
	if n == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.q.DeleteBudget(ctx, id)
	if err != nil {
		if database.IsCode(err, database.CodeForeignKeyViolation) {
			return domain.ErrBudgetInUse
		}
		return err
	}
	if n == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (r *budgetRepository) Items(ctx context.Context, quoteID uuid.UUID) ([]models.Item, error) {
	rows, err := r.q.ListBudgetItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	items := make([]models.Item, len(rows))
	for i, row := range rows {
		items[i] = models.Item{
			ID:          row.ID,
			QuoteID:     row.BudgetID,
			Name:        row.Name,
			Description: fromNullString(row.Description),
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			TotalPrice:  row.TotalPrice,
			Unit:        row.Unit,
			ServiceID:   fromNullUUID(row.ServiceID),
			MaterialID:  fromNullUUID(row.MaterialID),
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		}
	}
	return items, nil
}

func (r *budgetRepository) InsertItem(ctx context.Context, it *models.Item) error {
	return r.q.InsertBudgetItem(ctx, db.InsertBudgetItemParams{
		ID:          it.ID,
		BudgetID:    it.QuoteID,
		Name:        it.Name,
		Description: nullString(it.Description),
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		TotalPrice:  it.TotalPrice,
		Unit:        it.Unit,
		ServiceID:   nullUUID(it.ServiceID),
		MaterialID:  nullUUID(it.MaterialID),
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	})
}

func (r *budgetRepository) UpdateItem(ctx context.Context, it *models.Item) error {
	n, err := r.q.UpdateBudgetItem(ctx, db.UpdateBudgetItemParams{
		ID:          it.ID,
		BudgetID:    it.QuoteID,
		Name:        it.Name,
		Description: nullString(it.Description),
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		TotalPrice:  it.TotalPrice,
		Unit:        it.Unit,
		UpdatedAt:   it.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *budgetRepository) DeleteItem(ctx context.Context, quoteID, itemID uuid.UUID) error {
	n, err := r.q.DeleteBudgetItem(ctx, db.DeleteBudgetItemParams{ID: itemID, BudgetID: quoteID})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *budgetRepository) Overdue(ctx context.Context, asOf time.Time, limit int) ([]uuid.UUID, error) {
	return r.q.ListOverdueBudgetIDs(ctx, db.ListOverdueBudgetIDsParams{AsOf: asOf, Limit: int32(limit)})
}

func rowToBudget(row db.Budget) *models.Quote {
	return &models.Quote{
		ID:             row.ID,
		Kind:           models.KindBudget,
		ProfessionalID: row.ProfessionalID,
		ClientID:       row.ClientID,
		Name:           row.Name,
		Notes:          fromNullString(row.Notes),
		ValidUntil:     fromNullTime(row.ValidUntil),
		Discount:       fromDiscountColumns(row.Discount, row.DiscountType, row.DiscountReason),
		Totals:         models.Totals{Subtotal: row.Subtotal, TotalValue: row.TotalValue},
		Lifecycle:      lifecycle(row.Status, row.ApprovedAt, row.RejectedAt, row.RejectionReason),
		AccessLink:     row.AccessLink,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
