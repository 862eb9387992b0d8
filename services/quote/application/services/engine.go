package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/pkg/logger"
	"github.com/ghuser/voltdesk/services/quote/domain"
	domainevents "github.com/ghuser/voltdesk/services/quote/domain/events"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
	domainsvcs "github.com/ghuser/voltdesk/services/quote/domain/services"
)

// ViewCache is the public read-model cache. *cache.PublicViewCache
// satisfies it; a nil ViewCache disables caching.
type ViewCache interface {
	Get(ctx context.Context, kind string, id uuid.UUID, dst any) error
	Set(ctx context.Context, kind string, id uuid.UUID, v any) error
	Delete(ctx context.Context, kind string, id uuid.UUID) error
}

// Deps are the collaborators shared by every quote service.
type Deps struct {
	Store repositories.Store
	Views ViewCache
	Log   logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// quoteEngine implements the operations shared by budgets and material lists.
// Every mutation runs in one Store transaction: lock the row, check the
// lifecycle, apply, recompute totals from a fresh read of the items, write,
// enqueue the event.
type quoteEngine struct {
	kind    models.Kind
	store   repositories.Store
	views   ViewCache
	log     logger.Logger
	now     func() time.Time
	metrics *engineMetrics
}

func newEngine(kind models.Kind, d Deps, m *engineMetrics) *quoteEngine {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &quoteEngine{kind: kind, store: d.Store, views: d.Views, log: log, now: now, metrics: m}
}

// mutation configures one pass through mutate.
type mutation struct {
	op       string
	editable bool
	actor    string
}

type loader func(ctx context.Context, repo repositories.QuoteRepository) (*models.Quote, error)

func (e *quoteEngine) owned(professionalID, id uuid.UUID) loader {
	return func(ctx context.Context, repo repositories.QuoteRepository) (*models.Quote, error) {
		return repo.Get(ctx, professionalID, id, true)
	}
}

// mutate locks the aggregate returned by load, runs fn, recomputes totals
// and persists the result. The returned quote carries its current items.
func (e *quoteEngine) mutate(ctx context.Context, m mutation, load loader, fn func(ctx context.Context, tx repositories.Tx, q *models.Quote) error) (*models.Quote, error) {
	ctx, span := startSpan(ctx, e.kind, m.op)
	var out *models.Quote
	err := e.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		repo := tx.Quotes(e.kind)
		q, err := load(ctx, repo)
		if err != nil {
			return err
		}
		if m.editable {
			if err := domainsvcs.RequireEditable(q); err != nil {
				return err
			}
		}
		prev := q.Status
		if err := fn(ctx, tx, q); err != nil {
			return err
		}
		if err := e.recalculate(ctx, repo, q); err != nil {
			return err
		}

		evt := domainevents.NewQuoteEvent(e.kind.String(), q.ID, q.ProfessionalID, q.Status.String(), m.actor, q.UpdatedAt)
		topic := domainevents.TopicQuoteUpdated
		if q.Status != prev || m.op == "set_status" {
			topic = domainevents.TopicQuoteStatusChanged
			evt.PreviousStatus = prev.String()
			evt.Reason = q.RejectionReason
		}
		if err := tx.Publish(ctx, topic, evt); err != nil {
			return fmt.Errorf("publish %s: %w", topic, err)
		}
		out = q
		return nil
	})
	e.metrics.finish(ctx, span, e.kind, m.op, err)
	if err != nil {
		return nil, err
	}
	e.invalidate(ctx, out.ID)
	return out, nil
}

// recalculate re-reads every item of q, derives the totals and writes q.
func (e *quoteEngine) recalculate(ctx context.Context, repo repositories.QuoteRepository, q *models.Quote) error {
	items, err := repo.Items(ctx, q.ID)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	domainsvcs.Recalculate(q, items)
	q.Items = items
	q.UpdatedAt = e.now()
	if err := repo.Update(ctx, q); err != nil {
		return fmt.Errorf("update %s: %w", e.kind, err)
	}
	return nil
}

func (e *quoteEngine) invalidate(ctx context.Context, id uuid.UUID) {
	if e.views == nil {
		return
	}
	if err := e.views.Delete(ctx, e.kind.String(), id); err != nil {
		e.log.WarnContext(ctx, "public view invalidation failed", "kind", e.kind, "id", id, "error", err)
	}
}

// Create validates the client (and the parent budget for material lists) and
// inserts a PENDING aggregate with zero totals.
func (e *quoteEngine) Create(ctx context.Context, professionalID uuid.UUID, in CreateInput) (*models.Quote, error) {
	ctx, span := startSpan(ctx, e.kind, "create")
	var out *models.Quote
	err := e.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		if _, err := tx.Catalog().Client(ctx, professionalID, in.ClientID); err != nil {
			return err
		}
		q, err := models.NewQuote(e.kind, professionalID, in.ClientID, in.Name, e.now())
		if err != nil {
			return err
		}
		q.SetNotes(in.Notes)

		if e.kind.HasDiscount() {
			q.ValidUntil = in.ValidUntil
			if in.Discount != nil {
				d, err := in.Discount.build()
				if err != nil {
					return err
				}
				q.Discount = &d
			}
		} else if in.BudgetID != nil {
			if _, err := tx.Quotes(models.KindBudget).Get(ctx, professionalID, *in.BudgetID, false); err != nil {
				return err
			}
			q.BudgetID = in.BudgetID
		}

		domainsvcs.Recalculate(q, nil)
		if err := tx.Quotes(e.kind).Insert(ctx, q); err != nil {
			return fmt.Errorf("insert %s: %w", e.kind, err)
		}
		out = q
		return e.publishCreated(ctx, tx, q)
	})
	e.metrics.finish(ctx, span, e.kind, "create", err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *quoteEngine) publishCreated(ctx context.Context, tx repositories.Tx, q *models.Quote) error {
	evt := domainevents.NewQuoteEvent(e.kind.String(), q.ID, q.ProfessionalID, q.Status.String(), domainevents.ActorProfessional, q.CreatedAt)
	if err := tx.Publish(ctx, domainevents.TopicQuoteCreated, evt); err != nil {
		return fmt.Errorf("publish %s: %w", domainevents.TopicQuoteCreated, err)
	}
	return nil
}

// Get returns the aggregate with its items.
func (e *quoteEngine) Get(ctx context.Context, professionalID, id uuid.UUID) (*models.Quote, error) {
	var out *models.Quote
	err := e.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		repo := tx.Quotes(e.kind)
		q, err := repo.Get(ctx, professionalID, id, false)
		if err != nil {
			return err
		}
		if q.Items, err = repo.Items(ctx, q.ID); err != nil {
			return fmt.Errorf("load items: %w", err)
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns one page of the professional's aggregates, without items,
// plus the total count.
func (e *quoteEngine) List(ctx context.Context, professionalID uuid.UUID, f repositories.ListFilter) ([]*models.Quote, int, error) {
	var (
		out   []*models.Quote
		total int
	)
	err := e.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		var err error
		out, total, err = tx.Quotes(e.kind).List(ctx, professionalID, f)
		if err != nil {
			return fmt.Errorf("list %s: %w", e.kind, err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update changes descriptive fields. Only PENDING aggregates may be edited.
func (e *quoteEngine) Update(ctx context.Context, professionalID, id uuid.UUID, in UpdateInput) (*models.Quote, error) {
	m := mutation{op: "update", editable: true, actor: domainevents.ActorProfessional}
	return e.mutate(ctx, m, e.owned(professionalID, id), func(ctx context.Context, tx repositories.Tx, q *models.Quote) error {
		if in.Name != nil {
			if err := q.Rename(*in.Name); err != nil {
				return err
			}
		}
		if in.Notes != nil {
			q.SetNotes(in.Notes)
		}
		if in.ClientID != nil {
			if _, err := tx.Catalog().Client(ctx, professionalID, *in.ClientID); err != nil {
				return err
			}
			q.ClientID = *in.ClientID
		}
		if in.ValidUntil != nil && e.kind.HasDiscount() {
			q.ValidUntil = in.ValidUntil
		}
		if in.BudgetID != nil && !e.kind.HasDiscount() {
			if _, err := tx.Quotes(models.KindBudget).Get(ctx, professionalID, *in.BudgetID, false); err != nil {
				return err
			}
			q.BudgetID = in.BudgetID
		}
		return nil
	})
}

// Delete removes the aggregate and its items. A budget with derived material
// lists fails with ErrBudgetInUse.
func (e *quoteEngine) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	ctx, span := startSpan(ctx, e.kind, "delete")
	err := e.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		repo := tx.Quotes(e.kind)
		q, err := repo.Get(ctx, professionalID, id, true)
		if err != nil {
			return err
		}
		if e.kind == models.KindBudget {
			n, err := tx.CountDerived(ctx, q.ID)
			if err != nil {
				return fmt.Errorf("count derived lists: %w", err)
			}
			if n > 0 {
				return fmt.Errorf("%w: %d material list(s)", domain.ErrBudgetInUse, n)
			}
		}
		if err := repo.Delete(ctx, q.ID); err != nil {
			return fmt.Errorf("delete %s: %w", e.kind, err)
		}
		evt := domainevents.NewQuoteEvent(e.kind.String(), q.ID, q.ProfessionalID, q.Status.String(), domainevents.ActorProfessional, e.now())
		return tx.Publish(ctx, domainevents.TopicQuoteDeleted, evt)
	})
	e.metrics.finish(ctx, span, e.kind, "delete", err)
	if err != nil {
		return err
	}
	e.invalidate(ctx, id)
	return nil
}

// AddItem creates an item on a PENDING aggregate, snapshotting any
// referenced catalog entry, and recomputes the totals.
func (e *quoteEngine) AddItem(ctx context.Context, professionalID, id uuid.UUID, in ItemInput) (*models.Item, *models.Quote, error) {
	var created *models.Item
	m := mutation{op: "add_item", editable: true, actor: domainevents.ActorProfessional}
	q, err := e.mutate(ctx, m, e.owned(professionalID, id), func(ctx context.Context, tx repositories.Tx, q *models.Quote) error {
		spec, err := e.resolveItem(ctx, tx.Catalog(), professionalID, in)
		if err != nil {
			return err
		}
		it, err := models.NewItem(q.ID, spec, e.now())
		if err != nil {
			return err
		}
		if err := tx.Quotes(e.kind).InsertItem(ctx, it); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		created = it
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, q, nil
}

// resolveItem fills an ItemSpec from the catalog and the caller's overrides.
// On budgets a referenced service takes precedence over a material as the
// snapshot source.
func (e *quoteEngine) resolveItem(ctx context.Context, catalog repositories.CatalogReader, professionalID uuid.UUID, in ItemInput) (models.ItemSpec, error) {
	spec := models.ItemSpec{Quantity: in.Quantity, MaterialID: in.MaterialID}
	if e.kind == models.KindBudget {
		spec.ServiceID = in.ServiceID
	}

	var src *repositories.CatalogEntry
	if spec.MaterialID != nil {
		m, err := catalog.Material(ctx, professionalID, *spec.MaterialID)
		if err != nil {
			return spec, err
		}
		src = m
	}
	if spec.ServiceID != nil {
		s, err := catalog.Service(ctx, professionalID, *spec.ServiceID)
		if err != nil {
			return spec, err
		}
		src = s
	}
	if src != nil {
		spec.Name = src.Name
		spec.Description = src.Description
		spec.UnitPrice = src.Price
		spec.Unit = src.Unit
	} else if in.UnitPrice == nil {
		return spec, domain.ErrUnitPriceRequired
	}

	if in.Name != nil {
		spec.Name = *in.Name
	}
	if in.Description != nil {
		spec.Description = in.Description
	}
	if in.UnitPrice != nil {
		spec.UnitPrice = *in.UnitPrice
	}
	if in.Unit != nil {
		spec.Unit = *in.Unit
	}
	return spec, nil
}

// UpdateItem applies a partial update to an item of a PENDING aggregate.
func (e *quoteEngine) UpdateItem(ctx context.Context, professionalID, id, itemID uuid.UUID, p models.ItemPatch) (*models.Item, *models.Quote, error) {
	var updated *models.Item
	m := mutation{op: "update_item", editable: true, actor: domainevents.ActorProfessional}
	q, err := e.mutate(ctx, m, e.owned(professionalID, id), func(ctx context.Context, tx repositories.Tx, q *models.Quote) error {
		repo := tx.Quotes(e.kind)
		items, err := repo.Items(ctx, q.ID)
		if err != nil {
			return fmt.Errorf("load items: %w", err)
		}
		it, ok := findItem(items, itemID)
		if !ok {
			return domain.ErrItemNotFound
		}
		if err := it.Apply(p, e.now()); err != nil {
			return err
		}
		if err := repo.UpdateItem(ctx, &it); err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		updated = &it
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, q, nil
}

// RemoveItem deletes an item of a PENDING aggregate.
func (e *quoteEngine) RemoveItem(ctx context.Context, professionalID, id, itemID uuid.UUID) (*models.Quote, error) {
	m := mutation{op: "remove_item", editable: true, actor: domainevents.ActorProfessional}
	return e.mutate(ctx, m, e.owned(professionalID, id), func(ctx context.Context, tx repositories.Tx, q *models.Quote) error {
		return tx.Quotes(e.kind).DeleteItem(ctx, q.ID, itemID)
	})
}

// SetStatus transitions the aggregate regardless of its current status.
func (e *quoteEngine) SetStatus(ctx context.Context, professionalID, id uuid.UUID, to models.Status, reason *string) (*models.Quote, error) {
	return e.transition(ctx, e.owned(professionalID, id), to, reason, domainevents.ActorProfessional)
}

func (e *quoteEngine) transition(ctx context.Context, load loader, to models.Status, reason *string, actor string) (*models.Quote, error) {
	m := mutation{op: "set_status", actor: actor}
	return e.mutate(ctx, m, load, func(_ context.Context, _ repositories.Tx, q *models.Quote) error {
		q.Transition(to, reason, e.now())
		return nil
	})
}

// Duplicate deep-copies the aggregate and its items into a new PENDING
// aggregate. A blank name yields "<source name> (cópia)".
func (e *quoteEngine) Duplicate(ctx context.Context, professionalID, id uuid.UUID, name string) (*models.Quote, error) {
	ctx, span := startSpan(ctx, e.kind, "duplicate")
	var out *models.Quote
	err := e.store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		repo := tx.Quotes(e.kind)
		src, err := repo.Get(ctx, professionalID, id, false)
		if err != nil {
			return err
		}
		items, err := repo.Items(ctx, src.ID)
		if err != nil {
			return fmt.Errorf("load items: %w", err)
		}
		if strings.TrimSpace(name) == "" {
			name = models.TruncateName(src.Name + " (cópia)")
		}
		now := e.now()
		cp, err := src.Duplicate(name, now)
		if err != nil {
			return err
		}
		copies := make([]models.Item, len(items))
		for i, it := range items {
			copies[i] = it.CopyTo(cp.ID, models.CopyStamp(now, i))
		}
		out, err = e.insertWithItems(ctx, tx, cp, copies)
		return err
	})
	e.metrics.finish(ctx, span, e.kind, "duplicate", err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// insertWithItems inserts q and items, recomputes q's totals from the stored
// items and publishes quote.created.
func (e *quoteEngine) insertWithItems(ctx context.Context, tx repositories.Tx, q *models.Quote, items []models.Item) (*models.Quote, error) {
	repo := tx.Quotes(e.kind)
	if err := repo.Insert(ctx, q); err != nil {
		return nil, fmt.Errorf("insert %s: %w", e.kind, err)
	}
	for i := range items {
		if err := repo.InsertItem(ctx, &items[i]); err != nil {
			return nil, fmt.Errorf("insert item: %w", err)
		}
	}
	if err := e.recalculate(ctx, repo, q); err != nil {
		return nil, err
	}
	if err := e.publishCreated(ctx, tx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func findItem(items []models.Item, id uuid.UUID) (models.Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return models.Item{}, false
}

// isNotFound reports whether err belongs to the not-found family.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrBudgetNotFound) || errors.Is(err, domain.ErrMaterialListNotFound)
}
