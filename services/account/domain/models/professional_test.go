package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/voltdesk/services/account/domain"
)

func TestNewProfessional(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("BRT", -3*3600))
	email := Email("ana@example.com")

	t.Run("hashes password and stamps UTC times", func(t *testing.T) {
		p, err := NewProfessional(" Ana Lima ", email, nil, "disjuntor40", bcrypt.MinCost, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID == uuid.Nil {
			t.Fatal("expected non-zero ID")
		}
		if p.Name != "Ana Lima" {
			t.Fatalf("expected trimmed name, got %q", p.Name)
		}
		if p.PasswordHash == "disjuntor40" || p.PasswordHash == "" {
			t.Fatal("password must be stored hashed")
		}
		if p.CreatedAt.Location() != time.UTC || !p.CreatedAt.Equal(now) {
			t.Fatalf("unexpected CreatedAt %v", p.CreatedAt)
		}
	})

	t.Run("blank phone becomes nil", func(t *testing.T) {
		blank := "  "
		p, err := NewProfessional("Ana", email, &blank, "disjuntor40", bcrypt.MinCost, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Phone != nil {
			t.Fatalf("expected nil phone, got %q", *p.Phone)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProfessional("  ", email, nil, "disjuntor40", bcrypt.MinCost, now)
		if !errors.Is(err, domain.ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("rejects long name", func(t *testing.T) {
		_, err := NewProfessional(strings.Repeat("a", 256), email, nil, "disjuntor40", bcrypt.MinCost, now)
		if !errors.Is(err, domain.ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("rejects weak password", func(t *testing.T) {
		_, err := NewProfessional("Ana", email, nil, "curta", bcrypt.MinCost, now)
		if !errors.Is(err, domain.ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
	})
}

func TestProfessional_CheckPassword(t *testing.T) {
	p, err := NewProfessional("Ana", "ana@example.com", nil, "disjuntor40", bcrypt.MinCost, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, err := p.CheckPassword("disjuntor40"); err != nil || !ok {
		t.Fatalf("expected match, got %v %v", ok, err)
	}
	if ok, err := p.CheckPassword("disjuntor41"); err != nil || ok {
		t.Fatalf("expected mismatch, got %v %v", ok, err)
	}

	broken := &Professional{PasswordHash: "not-a-hash"}
	if _, err := broken.CheckPassword("x"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}
