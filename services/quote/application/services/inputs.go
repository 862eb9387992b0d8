package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/domain/models"
)

// CreateInput holds the fields accepted when creating a budget or material
// list. ValidUntil and Discount apply to budgets only; BudgetID to material
// lists only.
type CreateInput struct {
	ClientID   uuid.UUID
	Name       string
	Notes      *string
	ValidUntil *time.Time
	Discount   *DiscountInput
	BudgetID   *uuid.UUID
}

// UpdateInput is a partial update of the descriptive fields. Nil keeps the
// stored value.
type UpdateInput struct {
	Name       *string
	Notes      *string
	ClientID   *uuid.UUID
	ValidUntil *time.Time
	BudgetID   *uuid.UUID
}

// DiscountInput is the raw discount request before validation.
type DiscountInput struct {
	Value  decimal.Decimal
	Type   string
	Reason *string
}

func (d DiscountInput) build() (models.Discount, error) {
	return models.NewDiscount(d.Value, d.Type, d.Reason)
}

// ItemInput describes a new item. When ServiceID or MaterialID is set the
// catalog entry supplies name, unit price, unit and description, and any
// non-nil field here overrides it.
type ItemInput struct {
	Name        *string
	Description *string
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal
	Unit        *string
	ServiceID   *uuid.UUID
	MaterialID  *uuid.UUID
}
