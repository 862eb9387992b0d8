package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/catalog/domain"
)

func sp(s string) *string { return &s }

func TestNewClient(t *testing.T) {
	prof := uuid.New()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	c, err := NewClient(prof, ClientFields{Name: "  Maria Souza ", Email: sp(" "), Phone: sp(" 11 98888-7777 ")}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Maria Souza" || c.Email != nil || *c.Phone != "11 98888-7777" || c.ProfessionalID != prof {
		t.Fatalf("unexpected client: %+v", c)
	}

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewClient(prof, ClientFields{Name: "Maria", Email: sp("maria@")}, now)
		if !errors.Is(err, domain.ErrInvalidEmail) {
			t.Fatalf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := NewClient(prof, ClientFields{Name: " "}, now)
		if !errors.Is(err, domain.ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("replace keeps identity", func(t *testing.T) {
		later := now.Add(time.Hour)
		id := c.ID
		if err := c.Replace(ClientFields{Name: "Maria S."}, later); err != nil {
			t.Fatal(err)
		}
		if c.ID != id || c.Name != "Maria S." || c.Phone != nil || !c.UpdatedAt.Equal(later) || !c.CreatedAt.Equal(now) {
			t.Fatalf("unexpected client after replace: %+v", c)
		}
	})
}

func TestNewService(t *testing.T) {
	s, err := NewService(uuid.New(), OfferingFields{Name: "Instalação de tomada", Price: decimal.RequireFromString("45.555")}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Unit != DefaultUnit {
		t.Fatalf("expected default unit, got %q", s.Unit)
	}
	if !s.Price.Equal(decimal.RequireFromString("45.56")) {
		t.Fatalf("expected price rounded to cents, got %s", s.Price)
	}

	_, err = NewService(uuid.New(), OfferingFields{Name: "x", Price: decimal.NewFromInt(-1)}, time.Now())
	if !errors.Is(err, domain.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	_, err = NewService(uuid.New(), OfferingFields{Name: strings.Repeat("x", 256)}, time.Now())
	if !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestMaterial_Replace(t *testing.T) {
	m, err := NewMaterial(uuid.New(), OfferingFields{Name: "Cabo 2,5mm", Price: decimal.RequireFromString("3.20"), Unit: "m"}, sp("Sil"), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *m.Brand != "Sil" || m.Unit != "m" {
		t.Fatalf("unexpected material: %+v", m)
	}
	if err := m.Replace(OfferingFields{Name: "Cabo 4mm", Price: decimal.RequireFromString("5.10"), Unit: "m"}, nil, time.Now()); err != nil {
		t.Fatal(err)
	}
	if m.Brand != nil || m.Name != "Cabo 4mm" {
		t.Fatalf("unexpected material after replace: %+v", m)
	}
	if err := m.Replace(OfferingFields{Name: "", Price: decimal.Zero}, nil, time.Now()); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if m.Name != "Cabo 4mm" {
		t.Fatal("failed replace must not modify the material")
	}
}
