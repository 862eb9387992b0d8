package domain

import "errors"

// Sentinel errors for the quote domain. Use errors.Is() to check these.
var (
	// NotFound family. Also returned when the record belongs to another professional.
	ErrBudgetNotFound       = errors.New("budget not found")
	ErrMaterialListNotFound = errors.New("material list not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrMaterialNotFound     = errors.New("material not found")

	// ErrNotEditable is returned for item, discount and descriptive edits on a
	// budget or material list that is not PENDING.
	ErrNotEditable = errors.New("only PENDING budgets/material lists may be edited")

	// Validation family.
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidPrice      = errors.New("unit price must not be negative")
	ErrUnitPriceRequired = errors.New("unit price is required without a catalog reference")
	ErrInvalidDiscount   = errors.New("invalid discount")
	ErrInvalidStatus     = errors.New("invalid status")

	// ErrInvalidAccessLink is returned when a public request carries the wrong access link.
	ErrInvalidAccessLink = errors.New("invalid access link")

	// ErrBudgetInUse is returned when deleting a budget that still has derived material lists.
	ErrBudgetInUse = errors.New("budget has derived material lists")
)
