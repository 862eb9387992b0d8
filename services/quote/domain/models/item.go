package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/domain"
)

// Item is a priced line of a budget or material list. TotalPrice always
// equals Quantity × UnitPrice rounded to cents. ServiceID is only ever set on
// budget items.
type Item struct {
	ID          uuid.UUID
	QuoteID     uuid.UUID
	Name        string
	Description *string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Unit        string
	ServiceID   *uuid.UUID
	MaterialID  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemSpec carries the resolved values for a new item, after any catalog
// snapshot has been applied.
type ItemSpec struct {
	Name        string
	Description *string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Unit        string
	ServiceID   *uuid.UUID
	MaterialID  *uuid.UUID
}

// NewItem validates spec and builds an item for quoteID with its total computed.
func NewItem(quoteID uuid.UUID, spec ItemSpec, now time.Time) (*Item, error) {
	it := &Item{
		ID:          uuid.New(),
		QuoteID:     quoteID,
		Name:        strings.TrimSpace(spec.Name),
		Description: nonEmpty(spec.Description),
		Quantity:    RoundQuantity(spec.Quantity),
		UnitPrice:   RoundMoney(spec.UnitPrice),
		Unit:        unitOrDefault(spec.Unit),
		ServiceID:   spec.ServiceID,
		MaterialID:  spec.MaterialID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := it.validate(); err != nil {
		return nil, err
	}
	it.Reprice()
	return it, nil
}

// ItemPatch is a partial update. Nil fields keep the stored value.
type ItemPatch struct {
	Name        *string
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	Unit        *string
}

// Apply merges p into the item and recomputes TotalPrice from the effective
// quantity and unit price.
func (it *Item) Apply(p ItemPatch, now time.Time) error {
	next := *it
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		next.Description = nonEmpty(p.Description)
	}
	if p.Quantity != nil {
		next.Quantity = RoundQuantity(*p.Quantity)
	}
	if p.UnitPrice != nil {
		next.UnitPrice = RoundMoney(*p.UnitPrice)
	}
	if p.Unit != nil {
		next.Unit = unitOrDefault(*p.Unit)
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.Reprice()
	next.UpdatedAt = now
	*it = next
	return nil
}

// Reprice sets TotalPrice = Quantity × UnitPrice, rounded to cents.
func (it *Item) Reprice() {
	it.TotalPrice = RoundMoney(it.Quantity.Mul(it.UnitPrice))
}

// CopyTo returns a value copy of the item with a new identity under quoteID.
// Catalog references are preserved.
func (it Item) CopyTo(quoteID uuid.UUID, now time.Time) Item {
	cp := it
	cp.ID = uuid.New()
	cp.QuoteID = quoteID
	cp.Description = clonePtr(it.Description)
	cp.ServiceID = clonePtr(it.ServiceID)
	cp.MaterialID = clonePtr(it.MaterialID)
	cp.CreatedAt = now
	cp.UpdatedAt = now
	return cp
}

// CopyStamp is the creation time of the i-th item copied in one operation.
// Copies are a microsecond apart so ordering by created_at keeps the source
// order on Postgres, whose timestamps have microsecond precision.
func CopyStamp(now time.Time, i int) time.Time {
	return now.Add(time.Duration(i) * time.Microsecond)
}

func (it *Item) validate() error {
	if !validNameLength(it.Name) {
		return fmt.Errorf("%w: item name must be 1-%d characters", domain.ErrInvalidName, MaxNameLength)
	}
	if !it.Quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if it.UnitPrice.IsNegative() {
		return domain.ErrInvalidPrice
	}
	return nil
}

func unitOrDefault(u string) string {
	if u = strings.TrimSpace(u); u == "" {
		return DefaultUnit
	}
	return u
}

// DefaultUnit is used when neither the caller nor the catalog supplies one.
const DefaultUnit = "un"

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
