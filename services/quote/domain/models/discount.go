package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/domain"
)

// DiscountType selects how Discount.Value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// Discount is the budget-level discount policy.
type Discount struct {
	Value  decimal.Decimal
	Type   DiscountType
	Reason *string
}

// NewDiscount validates and builds a Discount. Negative values are rejected;
// percentages above 100 are accepted and clamp the total to zero.
func NewDiscount(value decimal.Decimal, typ string, reason *string) (Discount, error) {
	dt := DiscountType(strings.ToUpper(strings.TrimSpace(typ)))
	if dt != DiscountPercentage && dt != DiscountFixed {
		return Discount{}, fmt.Errorf("%w: type must be PERCENTAGE or FIXED", domain.ErrInvalidDiscount)
	}
	if value.IsNegative() {
		return Discount{}, fmt.Errorf("%w: value must not be negative", domain.ErrInvalidDiscount)
	}
	return Discount{Value: RoundMoney(value), Type: dt, Reason: nonEmpty(reason)}, nil
}
