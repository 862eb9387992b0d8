package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrMaterialNotFound = errors.New("material not found")

	// ErrClientInUse is returned when deleting a client still referenced by a
	// budget or material list.
	ErrClientInUse = errors.New("client is referenced by budgets or material lists")

	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidPrice = errors.New("price must not be negative")
	ErrInvalidEmail = errors.New("invalid email")
)
