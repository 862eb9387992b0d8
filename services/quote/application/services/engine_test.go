package services_test

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/voltdesk/services/quote/application/services"
	"github.com/ghuser/voltdesk/services/quote/domain"
	domainevents "github.com/ghuser/voltdesk/services/quote/domain/events"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
	"github.com/ghuser/voltdesk/services/quote/infrastructure/persistence/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store  *memory.Store
	svcs   *services.Services
	views  *memViews
	prof   uuid.UUID
	client uuid.UUID
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		views: newMemViews(),
		prof:  uuid.New(),
		now:   time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC),
	}
	f.client = f.store.AddClient(f.prof, "Maria Souza")
	f.svcs = services.NewServices(services.Deps{
		Store: f.store,
		Views: f.views,
		Now:   func() time.Time { return f.now },
	}, nil, "https://voltdesk.test/api/public")
	return f
}

func (f *fixture) budget(t *testing.T) *models.Quote {
	t.Helper()
	q, err := f.svcs.Budgets.Create(context.Background(), f.prof, services.CreateInput{ClientID: f.client, Name: "Instalação de chuveiro"})
	require.NoError(t, err)
	return q
}

func (f *fixture) addItem(t *testing.T, id uuid.UUID, qty, price string) *models.Item {
	t.Helper()
	it, _, err := f.svcs.Budgets.AddItem(context.Background(), f.prof, id, services.ItemInput{
		Name: ptr("Item"), Quantity: dec(qty), UnitPrice: ptr(dec(price)),
	})
	require.NoError(t, err)
	return it
}

func (f *fixture) get(t *testing.T, id uuid.UUID) *models.Quote {
	t.Helper()
	q, err := f.svcs.Budgets.Get(context.Background(), f.prof, id)
	require.NoError(t, err)
	return q
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func sumItems(items []models.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}
	return sum
}

func TestDiscountFollowsSubtotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)

	f.addItem(t, b.ID, "3", "10")
	q := f.get(t, b.ID)
	assertMoney(t, "30", q.Subtotal, "subtotal")
	assertMoney(t, "30", q.TotalValue, "totalValue")

	q, err := f.svcs.Budgets.ApplyDiscount(ctx, f.prof, b.ID, services.DiscountInput{Value: dec("10"), Type: "PERCENTAGE"})
	require.NoError(t, err)
	assertMoney(t, "27", q.TotalValue, "totalValue after discount")

	_, q, err = f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{Name: ptr("Tomada"), Quantity: dec("1"), UnitPrice: ptr(dec("20"))})
	require.NoError(t, err)
	assertMoney(t, "50", q.Subtotal, "subtotal")
	assertMoney(t, "45", q.TotalValue, "totalValue")

	q, err = f.svcs.Budgets.RemoveDiscount(ctx, f.prof, b.ID)
	require.NoError(t, err)
	assert.Nil(t, q.Discount)
	assertMoney(t, "50", q.TotalValue, "totalValue after removal")
}

func TestSubtotalMatchesItemsAfterRandomEdits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)
	rng := rand.New(rand.NewPCG(7, 42))

	_, err := f.svcs.Budgets.ApplyDiscount(ctx, f.prof, b.ID, services.DiscountInput{Value: dec("12.5"), Type: "PERCENTAGE"})
	require.NoError(t, err)

	var ids []uuid.UUID
	for step := range 200 {
		switch op := rng.IntN(3); {
		case op == 0 || len(ids) == 0:
			qty := decimal.NewFromInt(int64(rng.IntN(20) + 1)).Div(decimal.NewFromInt(4))
			price := decimal.NewFromInt(int64(rng.IntN(100000))).Shift(-2)
			it, _, err := f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{Name: ptr("x"), Quantity: qty, UnitPrice: &price})
			require.NoError(t, err)
			ids = append(ids, it.ID)
		case op == 1:
			id := ids[rng.IntN(len(ids))]
			patch := models.ItemPatch{Quantity: ptr(decimal.NewFromInt(int64(rng.IntN(9) + 1)))}
			if rng.IntN(2) == 0 {
				patch = models.ItemPatch{UnitPrice: ptr(decimal.NewFromInt(int64(rng.IntN(5000))).Shift(-2))}
			}
			_, _, err := f.svcs.Budgets.UpdateItem(ctx, f.prof, b.ID, id, patch)
			require.NoError(t, err)
		default:
			i := rng.IntN(len(ids))
			_, err := f.svcs.Budgets.RemoveItem(ctx, f.prof, b.ID, ids[i])
			require.NoError(t, err)
			ids = append(ids[:i], ids[i+1:]...)
		}

		q := f.get(t, b.ID)
		require.Lenf(t, q.Items, len(ids), "step %d", step)
		require.Truef(t, q.Subtotal.Equal(sumItems(q.Items)), "step %d: subtotal %s != sum %s", step, q.Subtotal, sumItems(q.Items))
		for _, it := range q.Items {
			require.True(t, it.TotalPrice.Equal(it.Quantity.Mul(it.UnitPrice).Round(2)))
		}
		want := q.Subtotal.Sub(q.Subtotal.Mul(dec("12.5")).Div(decimal.NewFromInt(100)).Round(2))
		require.Truef(t, q.TotalValue.Equal(want), "step %d: total %s, want %s", step, q.TotalValue, want)
	}
}

func TestTotalNeverNegative(t *testing.T) {
	tests := []struct {
		name     string
		discount services.DiscountInput
	}{
		{"fixed above subtotal", services.DiscountInput{Value: dec("1000"), Type: "FIXED"}},
		{"percentage above 100", services.DiscountInput{Value: dec("150"), Type: "PERCENTAGE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			b := f.budget(t)
			f.addItem(t, b.ID, "3", "10")

			q, err := f.svcs.Budgets.ApplyDiscount(context.Background(), f.prof, b.ID, tt.discount)
			require.NoError(t, err)
			assertMoney(t, "30", q.Subtotal, "subtotal")
			assertMoney(t, "0", q.TotalValue, "totalValue")
		})
	}
}

func TestNegativeDiscountRejected(t *testing.T) {
	f := newFixture(t)
	b := f.budget(t)
	f.addItem(t, b.ID, "1", "100")

	_, err := f.svcs.Budgets.ApplyDiscount(context.Background(), f.prof, b.ID, services.DiscountInput{Value: dec("-10"), Type: "FIXED"})
	require.ErrorIs(t, err, domain.ErrInvalidDiscount)
	assertMoney(t, "100", f.get(t, b.ID).TotalValue, "totalValue")
}

func TestFixedAndPercentageAgree(t *testing.T) {
	for _, c := range []struct{ qty, price, fixed string }{
		{"4", "20", "20"},
		{"3", "33.33", "10"},
		{"1.5", "199.90", "57.12"},
	} {
		f := newFixture(t)
		ctx := context.Background()
		b := f.budget(t)
		f.addItem(t, b.ID, c.qty, c.price)
		subtotal := f.get(t, b.ID).Subtotal

		fixed, err := f.svcs.Budgets.ApplyDiscount(ctx, f.prof, b.ID, services.DiscountInput{Value: dec(c.fixed), Type: "FIXED"})
		require.NoError(t, err)
		fixedTotal := fixed.TotalValue

		pct := dec(c.fixed).Div(subtotal).Mul(decimal.NewFromInt(100)).Round(2)
		perc, err := f.svcs.Budgets.ApplyDiscount(ctx, f.prof, b.ID, services.DiscountInput{Value: pct, Type: "PERCENTAGE"})
		require.NoError(t, err)

		diff := fixedTotal.Sub(perc.TotalValue).Abs()
		assert.Truef(t, diff.LessThanOrEqual(subtotal.Mul(dec("0.0001")).Add(dec("0.01"))),
			"fixed %s vs percentage %s%% on %s: %s vs %s", c.fixed, pct, subtotal, fixedTotal, perc.TotalValue)
	}
}

func TestNonPendingRejectsEdits(t *testing.T) {
	for _, status := range []models.Status{models.StatusApproved, models.StatusRejected, models.StatusExpired} {
		t.Run(status.String(), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			b := f.budget(t)
			it := f.addItem(t, b.ID, "2", "15")
			_, err := f.svcs.Budgets.ApplyDiscount(ctx, f.prof, b.ID, services.DiscountInput{Value: dec("5"), Type: "FIXED"})
			require.NoError(t, err)
			_, err = f.svcs.Budgets.SetStatus(ctx, f.prof, b.ID, status, nil)
			require.NoError(t, err)

			before := f.get(t, b.ID)
			f.now = f.now.Add(time.Hour)

			edits := map[string]func() error{
				"add item": func() error {
					_, _, err := f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{Name: ptr("x"), Quantity: dec("1"), UnitPrice: ptr(dec("1"))})
					return err
				},
				"update item": func() error {
					_, _, err := f.svcs.Budgets.UpdateItem(ctx, f.prof, b.ID, it.ID, models.ItemPatch{Quantity: ptr(dec("9"))})
					return err
				},
				"remove item": func() error {
					_, err := f.svcs.Budgets.RemoveItem(ctx, f.prof, b.ID, it.ID)
					return err
				},
				"apply discount": func() error {
					_, err := f.svcs.Budgets.ApplyDiscount(ctx, f.prof, b.ID, services.DiscountInput{Value: dec("1"), Type: "FIXED"})
					return err
				},
				"remove discount": func() error {
					_, err := f.svcs.Budgets.RemoveDiscount(ctx, f.prof, b.ID)
					return err
				},
				"rename": func() error {
					_, err := f.svcs.Budgets.Update(ctx, f.prof, b.ID, services.UpdateInput{Name: ptr("novo nome")})
					return err
				},
			}
			for name, edit := range edits {
				require.ErrorIsf(t, edit(), domain.ErrNotEditable, "edit %q", name)
			}

			assert.Equal(t, before, f.get(t, b.ID))
		})
	}
}

func TestPartialItemUpdateKeepsOtherFactor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)
	it := f.addItem(t, b.ID, "4", "12.50")

	updated, q, err := f.svcs.Budgets.UpdateItem(ctx, f.prof, b.ID, it.ID, models.ItemPatch{Quantity: ptr(dec("2"))})
	require.NoError(t, err)
	assertMoney(t, "12.50", updated.UnitPrice, "unitPrice")
	assertMoney(t, "25", updated.TotalPrice, "totalPrice")
	assertMoney(t, "25", q.Subtotal, "subtotal")

	updated, q, err = f.svcs.Budgets.UpdateItem(ctx, f.prof, b.ID, it.ID, models.ItemPatch{UnitPrice: ptr(dec("7"))})
	require.NoError(t, err)
	assertMoney(t, "2", updated.Quantity, "quantity")
	assertMoney(t, "14", updated.TotalPrice, "totalPrice")
	assertMoney(t, "14", q.TotalValue, "totalValue")
}

func TestItemMustBelongToAggregate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b := f.budget(t), f.budget(t)
	it := f.addItem(t, a.ID, "1", "10")

	_, _, err := f.svcs.Budgets.UpdateItem(ctx, f.prof, b.ID, it.ID, models.ItemPatch{Quantity: ptr(dec("3"))})
	require.ErrorIs(t, err, domain.ErrItemNotFound)
	_, err = f.svcs.Budgets.RemoveItem(ctx, f.prof, b.ID, it.ID)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	assertMoney(t, "10", f.get(t, a.ID).Subtotal, "untouched subtotal")
}

func TestStatusTimestampsAreExclusive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)
	reason := "prazo longo"

	steps := []models.Status{
		models.StatusApproved, models.StatusRejected, models.StatusApproved, models.StatusApproved,
		models.StatusPending, models.StatusRejected, models.StatusExpired, models.StatusApproved, models.StatusPending,
	}
	for _, to := range steps {
		f.now = f.now.Add(time.Minute)
		q, err := f.svcs.Budgets.SetStatus(ctx, f.prof, b.ID, to, &reason)
		require.NoError(t, err)
		require.Equal(t, to, q.Status)
		require.False(t, q.ApprovedAt != nil && q.RejectedAt != nil, "both timestamps set after %s", to)

		switch to {
		case models.StatusApproved:
			require.NotNil(t, q.ApprovedAt)
			require.Nil(t, q.RejectionReason)
		case models.StatusRejected:
			require.NotNil(t, q.RejectedAt)
			require.Equal(t, reason, *q.RejectionReason)
		default:
			require.Nil(t, q.ApprovedAt)
			require.Nil(t, q.RejectedAt)
			require.Nil(t, q.RejectionReason)
		}
	}
}

func TestDuplicateIsIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.budget(t)
	f.addItem(t, a.ID, "2", "50")
	f.addItem(t, a.ID, "1", "30")
	_, err := f.svcs.Budgets.ApplyDiscount(ctx, f.prof, a.ID, services.DiscountInput{Value: dec("10"), Type: "FIXED"})
	require.NoError(t, err)
	_, err = f.svcs.Budgets.SetStatus(ctx, f.prof, a.ID, models.StatusApproved, nil)
	require.NoError(t, err)
	before := f.get(t, a.ID)

	b, err := f.svcs.Budgets.Duplicate(ctx, f.prof, a.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Instalação de chuveiro (cópia)", b.Name)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.NotEqual(t, before.AccessLink, b.AccessLink)
	assertMoney(t, "130", b.Subtotal, "copied subtotal")
	assertMoney(t, "120", b.TotalValue, "copied totalValue")
	require.Len(t, b.Items, 2)

	_, _, err = f.svcs.Budgets.UpdateItem(ctx, f.prof, b.ID, b.Items[0].ID, models.ItemPatch{Quantity: ptr(dec("10"))})
	require.NoError(t, err)
	_, err = f.svcs.Budgets.RemoveItem(ctx, f.prof, b.ID, b.Items[1].ID)
	require.NoError(t, err)
	_, err = f.svcs.Budgets.ApplyDiscount(ctx, f.prof, b.ID, services.DiscountInput{Value: dec("50"), Type: "PERCENTAGE"})
	require.NoError(t, err)

	assert.Equal(t, before, f.get(t, a.ID))
}

func TestDeriveKeepsOnlyMaterialItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)

	for _, name := range []string{"Mão de obra", "Visita técnica"} {
		svc := f.store.AddService(f.prof, repositories.CatalogEntry{Name: name, Price: dec("150"), Unit: "h"})
		_, _, err := f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{ServiceID: &svc, Quantity: dec("2")})
		require.NoError(t, err)
	}
	for _, m := range []struct{ name, price, qty string }{
		{"Cabo 2,5mm", "3.20", "50"},
		{"Disjuntor 20A", "18.90", "3"},
		{"Caixa 4x2", "2.35", "12"},
	} {
		mat := f.store.AddMaterial(f.prof, repositories.CatalogEntry{Name: m.name, Price: dec(m.price), Unit: "un"})
		_, _, err := f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{MaterialID: &mat, Quantity: dec(m.qty)})
		require.NoError(t, err)
	}

	list, err := f.svcs.MaterialLists.DeriveFromBudget(ctx, f.prof, b.ID, "")
	require.NoError(t, err)

	assert.Equal(t, "Materiais - Instalação de chuveiro", list.Name)
	require.NotNil(t, list.BudgetID)
	assert.Equal(t, b.ID, *list.BudgetID)
	require.Len(t, list.Items, 3)
	for _, it := range list.Items {
		assert.NotNil(t, it.MaterialID)
		assert.Nil(t, it.ServiceID)
		assert.Equal(t, list.ID, it.QuoteID)
	}
	assertMoney(t, "244.90", list.Subtotal, "subtotal")
	assert.True(t, list.TotalValue.Equal(sumItems(list.Items)))

	require.ErrorIs(t, f.svcs.Budgets.Delete(ctx, f.prof, b.ID), domain.ErrBudgetInUse)
	require.NoError(t, f.svcs.MaterialLists.Delete(ctx, f.prof, list.ID))
	require.NoError(t, f.svcs.Budgets.Delete(ctx, f.prof, b.ID))
}

func TestCatalogSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)
	mat := f.store.AddMaterial(f.prof, repositories.CatalogEntry{Name: "Luminária LED", Description: ptr("18W"), Price: dec("45.00"), Unit: "pç"})

	it, _, err := f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{MaterialID: &mat, Quantity: dec("4")})
	require.NoError(t, err)
	assert.Equal(t, "Luminária LED", it.Name)
	assert.Equal(t, "pç", it.Unit)
	assert.Equal(t, "18W", *it.Description)
	assertMoney(t, "180", it.TotalPrice, "totalPrice")

	it, _, err = f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{MaterialID: &mat, Quantity: dec("1"), UnitPrice: ptr(dec("40")), Name: ptr("Luminária (promoção)")})
	require.NoError(t, err)
	assert.Equal(t, "Luminária (promoção)", it.Name)
	assertMoney(t, "40", it.UnitPrice, "overridden unitPrice")

	_, _, err = f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{MaterialID: ptr(uuid.New()), Quantity: dec("1")})
	require.ErrorIs(t, err, domain.ErrMaterialNotFound)
	_, _, err = f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{Name: ptr("sem preço"), Quantity: dec("1")})
	require.ErrorIs(t, err, domain.ErrUnitPriceRequired)
	assert.NotErrorIs(t, err, domain.ErrInvalidPrice)

	assert.Len(t, f.get(t, b.ID).Items, 2)
}

func TestOwnershipIsEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)
	stranger := uuid.New()

	_, err := f.svcs.Budgets.Get(ctx, stranger, b.ID)
	require.ErrorIs(t, err, domain.ErrBudgetNotFound)
	_, _, err = f.svcs.Budgets.AddItem(ctx, stranger, b.ID, services.ItemInput{Name: ptr("x"), Quantity: dec("1"), UnitPrice: ptr(dec("1"))})
	require.ErrorIs(t, err, domain.ErrBudgetNotFound)
	_, err = f.svcs.MaterialLists.DeriveFromBudget(ctx, stranger, b.ID, "")
	require.ErrorIs(t, err, domain.ErrBudgetNotFound)

	_, err = f.svcs.Budgets.Create(ctx, stranger, services.CreateInput{ClientID: f.client, Name: "x"})
	require.ErrorIs(t, err, domain.ErrClientNotFound)

	list, total, err := f.svcs.Budgets.List(ctx, stranger, repositories.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}

func TestListFiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for range 5 {
		f.now = f.now.Add(time.Minute)
		f.budget(t)
	}
	first, _, err := f.svcs.Budgets.List(ctx, f.prof, repositories.ListFilter{Limit: 1})
	require.NoError(t, err)
	_, err = f.svcs.Budgets.SetStatus(ctx, f.prof, first[0].ID, models.StatusApproved, nil)
	require.NoError(t, err)

	page, total, err := f.svcs.Budgets.List(ctx, f.prof, repositories.ListFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)

	approved := models.StatusApproved
	page, total, err = f.svcs.Budgets.List(ctx, f.prof, repositories.ListFilter{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, first[0].ID, page[0].ID)
}

func TestExpireOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	yesterday := f.now.Add(-24 * time.Hour)
	tomorrow := f.now.Add(24 * time.Hour)

	overdue, err := f.svcs.Budgets.Create(ctx, f.prof, services.CreateInput{ClientID: f.client, Name: "vencido", ValidUntil: &yesterday})
	require.NoError(t, err)
	current, err := f.svcs.Budgets.Create(ctx, f.prof, services.CreateInput{ClientID: f.client, Name: "vigente", ValidUntil: &tomorrow})
	require.NoError(t, err)
	approved, err := f.svcs.Budgets.Create(ctx, f.prof, services.CreateInput{ClientID: f.client, Name: "aprovado", ValidUntil: &yesterday})
	require.NoError(t, err)
	_, err = f.svcs.Budgets.SetStatus(ctx, f.prof, approved.ID, models.StatusApproved, nil)
	require.NoError(t, err)

	n, err := f.svcs.Budgets.ExpireOverdue(ctx, f.now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, models.StatusExpired, f.get(t, overdue.ID).Status)
	assert.Equal(t, models.StatusPending, f.get(t, current.ID).Status)
	assert.Equal(t, models.StatusApproved, f.get(t, approved.ID).Status)

	n, err = f.svcs.Budgets.ExpireOverdue(ctx, f.now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEventsFollowCommits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)
	f.addItem(t, b.ID, "1", "10")
	_, err := f.svcs.Budgets.SetStatus(ctx, f.prof, b.ID, models.StatusApproved, nil)
	require.NoError(t, err)
	_, _, err = f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{Name: ptr("x"), Quantity: dec("1"), UnitPrice: ptr(dec("1"))})
	require.ErrorIs(t, err, domain.ErrNotEditable)

	published := f.store.Published()
	topics := make([]string, len(published))
	for i, p := range published {
		topics[i] = p.Topic
	}
	assert.Equal(t, []string{
		domainevents.TopicQuoteCreated,
		domainevents.TopicQuoteUpdated,
		domainevents.TopicQuoteStatusChanged,
	}, topics)

	evt := published[2].Payload.(domainevents.QuoteEvent)
	assert.Equal(t, "PENDING", evt.PreviousStatus)
	assert.Equal(t, "APPROVED", evt.Status)
	assert.Equal(t, domainevents.ActorProfessional, evt.Actor)
	assert.Equal(t, "budget", evt.Kind)
}

func TestMaterialListLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)

	list, err := f.svcs.MaterialLists.Create(ctx, f.prof, services.CreateInput{ClientID: f.client, Name: "Compra avulsa", BudgetID: &b.ID})
	require.NoError(t, err)
	assert.Nil(t, list.Discount)

	_, _, err = f.svcs.MaterialLists.AddItem(ctx, f.prof, list.ID, services.ItemInput{Name: ptr("Fita isolante"), Quantity: dec("3"), UnitPrice: ptr(dec("6.50"))})
	require.NoError(t, err)
	got, err := f.svcs.MaterialLists.Get(ctx, f.prof, list.ID)
	require.NoError(t, err)
	assertMoney(t, "19.50", got.TotalValue, "totalValue")

	_, err = f.svcs.MaterialLists.Get(ctx, f.prof, b.ID)
	require.ErrorIs(t, err, domain.ErrMaterialListNotFound)

	_, err = f.svcs.MaterialLists.Create(ctx, f.prof, services.CreateInput{ClientID: f.client, Name: "x", BudgetID: ptr(uuid.New())})
	require.ErrorIs(t, err, domain.ErrBudgetNotFound)
}

func TestCopiesKeepItemOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.budget(t)
	names := []string{"Quadro", "Disjuntor", "Cabo", "Tomada"}
	for _, name := range names {
		mat := f.store.AddMaterial(f.prof, repositories.CatalogEntry{Name: name, Price: dec("1"), Unit: "un"})
		_, _, err := f.svcs.Budgets.AddItem(ctx, f.prof, b.ID, services.ItemInput{MaterialID: &mat, Quantity: dec("1")})
		require.NoError(t, err)
	}

	dup, err := f.svcs.Budgets.Duplicate(ctx, f.prof, b.ID, "")
	require.NoError(t, err)
	list, err := f.svcs.MaterialLists.DeriveFromBudget(ctx, f.prof, b.ID, "")
	require.NoError(t, err)

	for _, q := range []*models.Quote{dup, list} {
		require.Len(t, q.Items, len(names))
		for i, it := range q.Items {
			assert.Equal(t, names[i], it.Name)
			if i > 0 {
				assert.True(t, it.CreatedAt.After(q.Items[i-1].CreatedAt), "item %d of %s shares a timestamp", i, q.Kind)
			}
		}
	}
}

func TestNamesCountCharacters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svcs.Budgets.Create(ctx, f.prof, services.CreateInput{ClientID: f.client, Name: strings.Repeat("ç", 150)})
	require.NoError(t, err)
	assert.Equal(t, 150, utf8.RuneCountInString(q.Name))

	b, err := f.svcs.Budgets.Create(ctx, f.prof, services.CreateInput{ClientID: f.client, Name: strings.Repeat("é", 127)})
	require.NoError(t, err)
	list, err := f.svcs.MaterialLists.DeriveFromBudget(ctx, f.prof, b.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Materiais - "+strings.Repeat("é", 127), list.Name)

	long, err := f.svcs.Budgets.Create(ctx, f.prof, services.CreateInput{ClientID: f.client, Name: strings.Repeat("ã", 250)})
	require.NoError(t, err)
	dup, err := f.svcs.Budgets.Duplicate(ctx, f.prof, long.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.MaxNameLength, utf8.RuneCountInString(dup.Name))
	assert.True(t, utf8.ValidString(dup.Name))
}
