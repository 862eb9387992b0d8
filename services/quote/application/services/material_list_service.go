package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
	domainsvcs "github.com/ghuser/voltdesk/services/quote/domain/services"
)

// derivedNamePrefix names material lists derived without an explicit name.
const derivedNamePrefix = "Materiais - "

// MaterialListService orchestrates material lists: the shared quote
// operations plus derivation from a budget.
type MaterialListService struct {
	*quoteEngine
}

// NewMaterialListService returns a MaterialListService.
func NewMaterialListService(d Deps) *MaterialListService {
	return newMaterialListService(d, newEngineMetrics())
}

func newMaterialListService(d Deps, m *engineMetrics) *MaterialListService {
	return &MaterialListService{quoteEngine: newEngine(models.KindMaterialList, d, m)}
}

// DeriveFromBudget creates a material list linked to the budget holding a
// copy of every budget item that references a material. Service-only items
// are left out. A blank name yields "Materiais - <budget name>".
func (s *MaterialListService) DeriveFromBudget(ctx context.Context, professionalID, budgetID uuid.UUID, name string) (*models.Quote, error) {
	ctx, span := startSpan(ctx, s.kind, "derive")
	var out *models.Quote
	err := s.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		budgets := tx.Quotes(models.KindBudget)
		budget, err := budgets.Get(ctx, professionalID, budgetID, false)
		if err != nil {
			return err
		}
		items, err := budgets.Items(ctx, budget.ID)
		if err != nil {
			return err
		}

		if strings.TrimSpace(name) == "" {
			name = models.TruncateName(derivedNamePrefix + budget.Name)
		}
		now := s.now()
		list, err := models.NewQuote(models.KindMaterialList, professionalID, budget.ClientID, name, now)
		if err != nil {
			return err
		}
		list.BudgetID = &budget.ID
		list.Notes = budget.Notes

		out, err = s.insertWithItems(ctx, tx, list, domainsvcs.DeriveItems(items, list.ID, now))
		return err
	})
	s.metrics.finish(ctx, span, s.kind, "derive", err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
