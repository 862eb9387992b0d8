package domain

import "errors"

// Sentinel errors for the account domain. Use errors.Is() to check these.
var (
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrEmailTaken           = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidName        = errors.New("invalid name")
	ErrWeakPassword       = errors.New("password does not meet the policy")
)
