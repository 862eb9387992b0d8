package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/catalog/domain"
)

// DefaultUnit is used when an offering is created without a unit.
const DefaultUnit = "un"

// Offering holds what services and materials have in common: a priced,
// named entry that items can snapshot.
type Offering struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	OfferingFields
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OfferingFields are the editable attributes of an Offering.
type OfferingFields struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Unit        string
}

func (f OfferingFields) normalize() (OfferingFields, error) {
	name, err := validName(f.Name)
	if err != nil {
		return OfferingFields{}, err
	}
	if f.Price.IsNegative() {
		return OfferingFields{}, fmt.Errorf("%w: %s", domain.ErrInvalidPrice, f.Price)
	}
	unit := strings.TrimSpace(f.Unit)
	if unit == "" {
		unit = DefaultUnit
	}
	return OfferingFields{Name: name, Description: optional(f.Description), Price: f.Price.Round(2), Unit: unit}, nil
}

func newOffering(professionalID uuid.UUID, f OfferingFields, now time.Time) (Offering, error) {
	f, err := f.normalize()
	if err != nil {
		return Offering{}, err
	}
	now = now.UTC()
	return Offering{ID: uuid.New(), ProfessionalID: professionalID, OfferingFields: f, CreatedAt: now, UpdatedAt: now}, nil
}

func (o *Offering) replace(f OfferingFields, now time.Time) error {
	f, err := f.normalize()
	if err != nil {
		return err
	}
	o.OfferingFields = f
	o.UpdatedAt = now.UTC()
	return nil
}

// Service is labor the professional charges for, e.g. installing a socket.
type Service struct {
	Offering
}

// NewService validates f and returns a new Service.
func NewService(professionalID uuid.UUID, f OfferingFields, now time.Time) (*Service, error) {
	o, err := newOffering(professionalID, f, now)
	if err != nil {
		return nil, err
	}
	return &Service{Offering: o}, nil
}

// Replace overwrites every editable field.
func (s *Service) Replace(f OfferingFields, now time.Time) error { return s.replace(f, now) }

// Material is a physical supply, e.g. a breaker or a roll of cable.
type Material struct {
	Offering
	Brand *string
}

// NewMaterial validates f and returns a new Material.
func NewMaterial(professionalID uuid.UUID, f OfferingFields, brand *string, now time.Time) (*Material, error) {
	o, err := newOffering(professionalID, f, now)
	if err != nil {
		return nil, err
	}
	return &Material{Offering: o, Brand: optional(brand)}, nil
}

// Replace overwrites every editable field.
func (m *Material) Replace(f OfferingFields, brand *string, now time.Time) error {
	if err := m.replace(f, now); err != nil {
		return err
	}
	m.Brand = optional(brand)
	return nil
}
