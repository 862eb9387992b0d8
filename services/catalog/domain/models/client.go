package models

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/catalog/domain"
)

// Client is a customer of the professional. Budgets and material lists point
// at a client, so a referenced client cannot be deleted.
type Client struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	ClientFields
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientFields are the editable attributes of a Client.
type ClientFields struct {
	Name     string
	Email    *string
	Phone    *string
	Document *string // CPF or CNPJ, stored as entered
	Address  *string
	Notes    *string
}

func (f ClientFields) normalize() (ClientFields, error) {
	name, err := validName(f.Name)
	if err != nil {
		return ClientFields{}, err
	}
	out := ClientFields{
		Name:     name,
		Email:    optional(f.Email),
		Phone:    optional(f.Phone),
		Document: optional(f.Document),
		Address:  optional(f.Address),
		Notes:    optional(f.Notes),
	}
	if out.Email != nil {
		if _, err := mail.ParseAddress(*out.Email); err != nil {
			return ClientFields{}, fmt.Errorf("%w: %q", domain.ErrInvalidEmail, *out.Email)
		}
	}
	return out, nil
}

// NewClient validates f and returns a new Client owned by professionalID.
func NewClient(professionalID uuid.UUID, f ClientFields, now time.Time) (*Client, error) {
	f, err := f.normalize()
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	return &Client{ID: uuid.New(), ProfessionalID: professionalID, ClientFields: f, CreatedAt: now, UpdatedAt: now}, nil
}

// Replace overwrites every editable field with f.
func (c *Client) Replace(f ClientFields, now time.Time) error {
	f, err := f.normalize()
	if err != nil {
		return err
	}
	c.ClientFields = f
	c.UpdatedAt = now.UTC()
	return nil
}
