package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	domainevents "github.com/ghuser/voltdesk/services/quote/domain/events"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
)

// overdueBatch bounds how many budgets one sweep expires.
const overdueBatch = 500

// errSkip aborts the expiry transaction of a budget that no longer qualifies.
var errSkip = errors.New("budget no longer overdue")

// BudgetRenderer writes a budget, loaded with its items, as a document.
// The gofpdf generator implements it.
type BudgetRenderer interface {
	RenderBudget(w io.Writer, budget *models.Quote, clientName, publicURL string) error
}

// BudgetService orchestrates budgets: the shared quote operations plus
// discounts, expiry and PDF export.
type BudgetService struct {
	*quoteEngine
	renderer      BudgetRenderer
	publicBaseURL string
}

// NewBudgetService returns a BudgetService. renderer may be nil when PDF
// export is not needed.
func NewBudgetService(d Deps, renderer BudgetRenderer, publicBaseURL string) *BudgetService {
	return newBudgetService(d, renderer, publicBaseURL, newEngineMetrics())
}

func newBudgetService(d Deps, renderer BudgetRenderer, publicBaseURL string, m *engineMetrics) *BudgetService {
	return &BudgetService{
		quoteEngine:   newEngine(models.KindBudget, d, m),
		renderer:      renderer,
		publicBaseURL: publicBaseURL,
	}
}

// ApplyDiscount stores the discount on a PENDING budget and recomputes the
// total. Negative values fail with ErrInvalidDiscount.
func (s *BudgetService) ApplyDiscount(ctx context.Context, professionalID, id uuid.UUID, in DiscountInput) (*models.Quote, error) {
	d, err := in.build()
	if err != nil {
		return nil, err
	}
	m := mutation{op: "apply_discount", editable: true, actor: domainevents.ActorProfessional}
	return s.mutate(ctx, m, s.owned(professionalID, id), func(_ context.Context, _ repositories.Tx, q *models.Quote) error {
		q.Discount = &d
		return nil
	})
}

// RemoveDiscount clears the discount of a PENDING budget.
func (s *BudgetService) RemoveDiscount(ctx context.Context, professionalID, id uuid.UUID) (*models.Quote, error) {
	m := mutation{op: "remove_discount", editable: true, actor: domainevents.ActorProfessional}
	return s.mutate(ctx, m, s.owned(professionalID, id), func(_ context.Context, _ repositories.Tx, q *models.Quote) error {
		q.Discount = nil
		return nil
	})
}

// ExpireOverdue moves every PENDING budget whose validity ended before asOf
// to EXPIRED, one transaction per budget. A budget that changed or vanished
// since it was listed is skipped. It returns how many budgets were expired.
func (s *BudgetService) ExpireOverdue(ctx context.Context, asOf time.Time) (int, error) {
	var ids []uuid.UUID
	err := s.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		var err error
		ids, err = tx.Quotes(models.KindBudget).Overdue(ctx, asOf, overdueBatch)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("list overdue budgets: %w", err)
	}

	expired := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return expired, err
		}
		load := func(ctx context.Context, repo repositories.QuoteRepository) (*models.Quote, error) {
			q, err := repo.GetForPublic(ctx, id, true)
			if err != nil {
				return nil, err
			}
			if q.Status != models.StatusPending || q.ValidUntil == nil || !q.ValidUntil.Before(asOf) {
				return nil, errSkip
			}
			return q, nil
		}
		_, err := s.transition(ctx, load, models.StatusExpired, nil, domainevents.ActorSystem)
		switch {
		case err == nil:
			expired++
		case errors.Is(err, errSkip) || isNotFound(err):
			continue
		default:
			return expired, fmt.Errorf("expire budget %s: %w", id, err)
		}
	}
	if expired > 0 {
		s.metrics.expired.Add(ctx, int64(expired))
		s.log.InfoContext(ctx, "expired overdue budgets", "count", expired, "as_of", asOf)
	}
	return expired, nil
}

// RenderPDF writes the budget, with its items and client name, to w.
func (s *BudgetService) RenderPDF(ctx context.Context, professionalID, id uuid.UUID, w io.Writer) error {
	if s.renderer == nil {
		return fmt.Errorf("pdf export is not configured")
	}
	ctx, span := startSpan(ctx, s.kind, "render_pdf")
	defer span.End()

	var (
		budget     *models.Quote
		clientName string
	)
	err := s.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		repo := tx.Quotes(models.KindBudget)
		q, err := repo.Get(ctx, professionalID, id, false)
		if err != nil {
			return err
		}
		if q.Items, err = repo.Items(ctx, q.ID); err != nil {
			return fmt.Errorf("load items: %w", err)
		}
		c, err := tx.Catalog().Client(ctx, professionalID, q.ClientID)
		if err != nil {
			return err
		}
		budget, clientName = q, c.Name
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.renderer.RenderBudget(w, budget, clientName, PublicURL(s.publicBaseURL, budget)); err != nil {
		return fmt.Errorf("render budget pdf: %w", err)
	}
	return nil
}
