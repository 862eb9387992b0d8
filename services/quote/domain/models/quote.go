package models

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/domain"
)

// Totals are derived from the items and discount; never set them directly.
type Totals struct {
	Subtotal   decimal.Decimal
	TotalValue decimal.Decimal
}

// Quote is the aggregate behind both budgets and material lists. Budget-only
// fields (ValidUntil, Discount) stay nil on material lists; BudgetID is only
// set on material lists derived from or linked to a budget.
type Quote struct {
	ID             uuid.UUID
	Kind           Kind
	ProfessionalID uuid.UUID
	ClientID       uuid.UUID
	BudgetID       *uuid.UUID
	Name           string
	Notes          *string
	ValidUntil     *time.Time
	Discount       *Discount
	Totals
	Lifecycle
	AccessLink string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Items is populated only by reads that load the full aggregate.
	Items []Item
}

// NewQuote builds a PENDING aggregate with zero totals and a fresh access link.
func NewQuote(kind Kind, professionalID, clientID uuid.UUID, name string, now time.Time) (*Quote, error) {
	name = strings.TrimSpace(name)
	if !validNameLength(name) {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", domain.ErrInvalidName, MaxNameLength)
	}
	return &Quote{
		ID:             uuid.New(),
		Kind:           kind,
		ProfessionalID: professionalID,
		ClientID:       clientID,
		Name:           name,
		Totals:         Totals{Subtotal: decimal.Zero, TotalValue: decimal.Zero},
		Lifecycle:      NewLifecycle(),
		AccessLink:     NewAccessLink(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Rename validates and sets the name.
func (q *Quote) Rename(name string) error {
	name = strings.TrimSpace(name)
	if !validNameLength(name) {
		return fmt.Errorf("%w: name must be 1-%d characters", domain.ErrInvalidName, MaxNameLength)
	}
	q.Name = name
	return nil
}

// SetNotes stores trimmed notes; blank clears them.
func (q *Quote) SetNotes(notes *string) {
	q.Notes = nonEmpty(notes)
}

// Duplicate returns a new PENDING aggregate carrying q's descriptive fields,
// discount and links, with zero totals, a fresh access link and no items.
func (q *Quote) Duplicate(name string, now time.Time) (*Quote, error) {
	cp, err := NewQuote(q.Kind, q.ProfessionalID, q.ClientID, name, now)
	if err != nil {
		return nil, err
	}
	cp.BudgetID = clonePtr(q.BudgetID)
	cp.Notes = clonePtr(q.Notes)
	cp.ValidUntil = clonePtr(q.ValidUntil)
	if q.Discount != nil {
		d := *q.Discount
		d.Reason = clonePtr(q.Discount.Reason)
		cp.Discount = &d
	}
	return cp, nil
}

// NewAccessLink returns 32 random bytes encoded as unpadded base32.
func NewAccessLink() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}
