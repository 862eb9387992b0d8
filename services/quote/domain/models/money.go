package models

import "github.com/shopspring/decimal"

const (
	moneyPlaces    = 2
	quantityPlaces = 3
)

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// RoundQuantity keeps at most three decimal places.
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(quantityPlaces)
}
