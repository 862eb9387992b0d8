// Package memory is an in-process implementation of the quote Store. It backs
// the engine tests and local runs without Postgres. Transactions are
// serialized by a mutex and work on a copy of the state that replaces the
// original only on commit.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/quote/domain"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
)

// Published is an event that was committed through Tx.Publish.
type Published struct {
	Topic   string
	Payload any
}

type owned[T any] struct {
	professionalID uuid.UUID
	value          T
}

type itemRow struct {
	item models.Item
	seq  int64
}

type state struct {
	quotes    map[models.Kind]map[uuid.UUID]models.Quote
	items     map[models.Kind]map[uuid.UUID]itemRow
	clients   map[uuid.UUID]owned[repositories.ClientRef]
	services  map[uuid.UUID]owned[repositories.CatalogEntry]
	materials map[uuid.UUID]owned[repositories.CatalogEntry]
	seq       int64
}

func newState() *state {
	return &state{
		quotes: map[models.Kind]map[uuid.UUID]models.Quote{
			models.KindBudget:       {},
			models.KindMaterialList: {},
		},
		items: map[models.Kind]map[uuid.UUID]itemRow{
			models.KindBudget:       {},
			models.KindMaterialList: {},
		},
		clients:   map[uuid.UUID]owned[repositories.ClientRef]{},
		services:  map[uuid.UUID]owned[repositories.CatalogEntry]{},
		materials: map[uuid.UUID]owned[repositories.CatalogEntry]{},
	}
}

// clone copies every map. Quotes and items are stored by value and the domain
// replaces pointer fields rather than writing through them, so a shallow copy
// of each value is enough.
func (s *state) clone() *state {
	cp := newState()
	for k, m := range s.quotes {
		for id, q := range m {
			cp.quotes[k][id] = q
		}
	}
	for k, m := range s.items {
		for id, it := range m {
			cp.items[k][id] = it
		}
	}
	for id, c := range s.clients {
		cp.clients[id] = c
	}
	for id, e := range s.services {
		cp.services[id] = e
	}
	for id, e := range s.materials {
		cp.materials[id] = e
	}
	cp.seq = s.seq
	return cp
}

// Store implements repositories.Store in memory.
type Store struct {
	mu        sync.Mutex
	state     *state
	published []Published
}

var _ repositories.Store = (*Store)(nil)

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Do runs fn against a private copy of the state and commits it when fn
// returns nil.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, tx repositories.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{st: s.state.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.state = tx.st
	s.published = append(s.published, tx.outbox...)
	return nil
}

// Published returns the committed events in publish order.
func (s *Store) Published() []Published {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.published)
}

// AddClient seeds a client owned by professionalID.
func (s *Store) AddClient(professionalID uuid.UUID, name string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.state.clients[id] = owned[repositories.ClientRef]{professionalID, repositories.ClientRef{ID: id, Name: name}}
	return id
}

// AddService seeds a catalog service owned by professionalID. e.ID is ignored.
func (s *Store) AddService(professionalID uuid.UUID, e repositories.CatalogEntry) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.New()
	s.state.services[e.ID] = owned[repositories.CatalogEntry]{professionalID, e}
	return e.ID
}

// AddMaterial seeds a catalog material owned by professionalID. e.ID is ignored.
func (s *Store) AddMaterial(professionalID uuid.UUID, e repositories.CatalogEntry) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.New()
	s.state.materials[e.ID] = owned[repositories.CatalogEntry]{professionalID, e}
	return e.ID
}

type memTx struct {
	st     *state
	outbox []Published
}

func (t *memTx) Quotes(kind models.Kind) repositories.QuoteRepository {
	return &quoteRepo{tx: t, kind: kind}
}

func (t *memTx) Catalog() repositories.CatalogReader { return catalogReader{st: t.st} }

func (t *memTx) CountDerived(_ context.Context, budgetID uuid.UUID) (int, error) {
	n := 0
	for _, q := range t.st.quotes[models.KindMaterialList] {
		if q.BudgetID != nil && *q.BudgetID == budgetID {
			n++
		}
	}
	return n, nil
}

func (t *memTx) Publish(_ context.Context, topic string, payload any) error {
	t.outbox = append(t.outbox, Published{Topic: topic, Payload: payload})
	return nil
}

type quoteRepo struct {
	tx   *memTx
	kind models.Kind
}

func (r *quoteRepo) quotes() map[uuid.UUID]models.Quote { return r.tx.st.quotes[r.kind] }
func (r *quoteRepo) items() map[uuid.UUID]itemRow        { return r.tx.st.items[r.kind] }

func (r *quoteRepo) Get(_ context.Context, professionalID, id uuid.UUID, _ bool) (*models.Quote, error) {
	q, ok := r.quotes()[id]
	if !ok || q.ProfessionalID != professionalID {
		return nil, r.kind.ErrNotFound()
	}
	return &q, nil
}

func (r *quoteRepo) GetForPublic(_ context.Context, id uuid.UUID, _ bool) (*models.Quote, error) {
	q, ok := r.quotes()[id]
	if !ok {
		return nil, r.kind.ErrNotFound()
	}
	return &q, nil
}

func (r *quoteRepo) List(_ context.Context, professionalID uuid.UUID, f repositories.ListFilter) ([]*models.Quote, int, error) {
	var all []*models.Quote
	for _, q := range r.quotes() {
		if q.ProfessionalID != professionalID {
			continue
		}
		if f.Status != nil && q.Status != *f.Status {
			continue
		}
		if f.ClientID != nil && q.ClientID != *f.ClientID {
			continue
		}
		if f.BudgetID != nil && (q.BudgetID == nil || *q.BudgetID != *f.BudgetID) {
			continue
		}
		all = append(all, &q)
	}
	slices.SortFunc(all, func(a, b *models.Quote) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})

	total := len(all)
	start := min(f.Offset, total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}
	return all[start:end], total, nil
}

func (r *quoteRepo) Insert(_ context.Context, q *models.Quote) error {
	cp := *q
	cp.Items = nil
	r.quotes()[q.ID] = cp
	return nil
}

func (r *quoteRepo) Update(_ context.Context, q *models.Quote) error {
	if _, ok := r.quotes()[q.ID]; !ok {
		return r.kind.ErrNotFound()
	}
	cp := *q
	cp.Items = nil
	r.quotes()[q.ID] = cp
	return nil
}

func (r *quoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.quotes()[id]; !ok {
		return r.kind.ErrNotFound()
	}
	delete(r.quotes(), id)
	for itemID, row := range r.items() {
		if row.item.QuoteID == id {
			delete(r.items(), itemID)
		}
	}
	return nil
}

func (r *quoteRepo) Items(_ context.Context, quoteID uuid.UUID) ([]models.Item, error) {
	var rows []itemRow
	for _, row := range r.items() {
		if row.item.QuoteID == quoteID {
			rows = append(rows, row)
		}
	}
	// Same order as Postgres (created_at, then insertion for equal stamps).
	slices.SortFunc(rows, func(a, b itemRow) int {
		if c := a.item.CreatedAt.Compare(b.item.CreatedAt); c != 0 {
			return c
		}
		return int(a.seq - b.seq)
	})

	out := make([]models.Item, len(rows))
	for i, row := range rows {
		out[i] = row.item
	}
	return out, nil
}

func (r *quoteRepo) InsertItem(_ context.Context, it *models.Item) error {
	if _, ok := r.quotes()[it.QuoteID]; !ok {
		return r.kind.ErrNotFound()
	}
	r.tx.st.seq++
	r.items()[it.ID] = itemRow{item: *it, seq: r.tx.st.seq}
	return nil
}

func (r *quoteRepo) UpdateItem(_ context.Context, it *models.Item) error {
	row, ok := r.items()[it.ID]
	if !ok || row.item.QuoteID != it.QuoteID {
		return domain.ErrItemNotFound
	}
	row.item = *it
	r.items()[it.ID] = row
	return nil
}

func (r *quoteRepo) DeleteItem(_ context.Context, quoteID, itemID uuid.UUID) error {
	row, ok := r.items()[itemID]
	if !ok || row.item.QuoteID != quoteID {
		return domain.ErrItemNotFound
	}
	delete(r.items(), itemID)
	return nil
}

func (r *quoteRepo) Overdue(_ context.Context, asOf time.Time, limit int) ([]uuid.UUID, error) {
	var due []models.Quote
	for _, q := range r.quotes() {
		if q.Status == models.StatusPending && q.ValidUntil != nil && q.ValidUntil.Before(asOf) {
			due = append(due, q)
		}
	}
	slices.SortFunc(due, func(a, b models.Quote) int { return a.ValidUntil.Compare(*b.ValidUntil) })

	ids := make([]uuid.UUID, 0, len(due))
	for _, q := range due {
		if limit > 0 && len(ids) == limit {
			break
		}
		ids = append(ids, q.ID)
	}
	return ids, nil
}

type catalogReader struct{ st *state }

func (c catalogReader) Client(_ context.Context, professionalID, id uuid.UUID) (*repositories.ClientRef, error) {
	o, ok := c.st.clients[id]
	if !ok || o.professionalID != professionalID {
		return nil, domain.ErrClientNotFound
	}
	return &o.value, nil
}

func (c catalogReader) Service(_ context.Context, professionalID, id uuid.UUID) (*repositories.CatalogEntry, error) {
	o, ok := c.st.services[id]
	if !ok || o.professionalID != professionalID {
		return nil, domain.ErrServiceNotFound
	}
	return &o.value, nil
}

func (c catalogReader) Material(_ context.Context, professionalID, id uuid.UUID) (*repositories.CatalogEntry, error) {
	o, ok := c.st.materials[id]
	if !ok || o.professionalID != professionalID {
		return nil, domain.ErrMaterialNotFound
	}
	return &o.value, nil
}
