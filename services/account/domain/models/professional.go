package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/voltdesk/services/account/domain"
	domainsvcs "github.com/ghuser/voltdesk/services/account/domain/services"
)

const maxNameLength = 255

// Professional is the electrician who owns clients, catalog entries, budgets
// and material lists. Every other context scopes its rows by Professional.ID.
type Professional struct {
	ID           uuid.UUID
	Name         string
	Email        Email
	PasswordHash string
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProfessional validates the registration fields and hashes password with
// bcrypt at the given cost.
func NewProfessional(name string, email Email, phone *string, password string, cost int, now time.Time) (*Professional, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return nil, fmt.Errorf("%w: must be 1-%d characters", domain.ErrInvalidName, maxNameLength)
	}
	if err := domainsvcs.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrWeakPassword, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if phone != nil {
		p := strings.TrimSpace(*phone)
		phone = &p
		if p == "" {
			phone = nil
		}
	}
	now = now.UTC()
	return &Professional{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword reports whether password matches the stored hash.
func (p *Professional) CheckPassword(password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}
