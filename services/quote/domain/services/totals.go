// Package services contains the stateless totals and lifecycle rules for
// budgets and material lists. Nothing here touches persistence.
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/domain"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
)

var hundred = decimal.NewFromInt(100)

// Subtotal sums the items' TotalPrice.
func Subtotal(items []models.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}
	return models.RoundMoney(sum)
}

// DiscountAmount is 0 without a discount, subtotal × value / 100 for
// PERCENTAGE and value for FIXED.
func DiscountAmount(subtotal decimal.Decimal, d *models.Discount) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	switch d.Type {
	case models.DiscountPercentage:
		return models.RoundMoney(subtotal.Mul(d.Value).Div(hundred))
	case models.DiscountFixed:
		return d.Value
	default:
		return decimal.Zero
	}
}

// TotalValue is max(0, subtotal − DiscountAmount).
func TotalValue(subtotal decimal.Decimal, d *models.Discount) decimal.Decimal {
	total := subtotal.Sub(DiscountAmount(subtotal, d))
	if total.IsNegative() {
		return decimal.Zero
	}
	return models.RoundMoney(total)
}

// Recalculate derives q's totals from the full current item set.
func Recalculate(q *models.Quote, items []models.Item) {
	subtotal := Subtotal(items)
	q.Totals = models.Totals{
		Subtotal:   subtotal,
		TotalValue: TotalValue(subtotal, q.Discount),
	}
}

// RequireEditable fails with ErrNotEditable unless q is PENDING.
func RequireEditable(q *models.Quote) error {
	if !q.Editable() {
		return domain.ErrNotEditable
	}
	return nil
}

// DeriveItems returns copies of the budget items that reference a material,
// reparented to listID. Service references are dropped.
func DeriveItems(budgetItems []models.Item, listID uuid.UUID, now time.Time) []models.Item {
	out := make([]models.Item, 0, len(budgetItems))
	for _, it := range budgetItems {
		if it.MaterialID == nil {
			continue
		}
		cp := it.CopyTo(listID, models.CopyStamp(now, len(out)))
		cp.ServiceID = nil
		out = append(out, cp)
	}
	return out
}
