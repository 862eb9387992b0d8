package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/quote/domain"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
)

func TestStore_RollbackDiscardsWritesAndEvents(t *testing.T) {
	s := NewStore()
	prof := uuid.New()
	client := s.AddClient(prof, "Cliente")
	q, _ := models.NewQuote(models.KindBudget, prof, client, "Orçamento", time.Now())
	boom := errors.New("boom")

	err := s.Do(context.Background(), func(ctx context.Context, tx repositories.Tx) error {
		if err := tx.Quotes(models.KindBudget).Insert(ctx, q); err != nil {
			return err
		}
		if err := tx.Publish(ctx, "quote.created", q.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if n := len(s.Published()); n != 0 {
		t.Fatalf("expected no published events, got %d", n)
	}

	err = s.Do(context.Background(), func(ctx context.Context, tx repositories.Tx) error {
		_, err := tx.Quotes(models.KindBudget).Get(ctx, prof, q.ID, false)
		return err
	})
	if !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound after rollback, got %v", err)
	}
}

func TestStore_CommitKeepsCopiesIsolated(t *testing.T) {
	s := NewStore()
	prof := uuid.New()
	q, _ := models.NewQuote(models.KindMaterialList, prof, uuid.New(), "Lista", time.Now())
	ctx := context.Background()

	if err := s.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		return tx.Quotes(models.KindMaterialList).Insert(ctx, q)
	}); err != nil {
		t.Fatal(err)
	}
	q.Name = "changed outside"

	_ = s.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		got, err := tx.Quotes(models.KindMaterialList).Get(ctx, prof, q.ID, true)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "Lista" {
			t.Fatalf("stored aggregate aliased caller value: %q", got.Name)
		}
		return nil
	})
}

func TestCatalogReader_ScopesByProfessional(t *testing.T) {
	s := NewStore()
	owner, other := uuid.New(), uuid.New()
	mat := s.AddMaterial(owner, repositories.CatalogEntry{Name: "Disjuntor"})
	svc := s.AddService(owner, repositories.CatalogEntry{Name: "Instalação"})

	_ = s.Do(context.Background(), func(ctx context.Context, tx repositories.Tx) error {
		if _, err := tx.Catalog().Material(ctx, other, mat); !errors.Is(err, domain.ErrMaterialNotFound) {
			t.Errorf("expected ErrMaterialNotFound, got %v", err)
		}
		if _, err := tx.Catalog().Service(ctx, other, svc); !errors.Is(err, domain.ErrServiceNotFound) {
			t.Errorf("expected ErrServiceNotFound, got %v", err)
		}
		if e, err := tx.Catalog().Material(ctx, owner, mat); err != nil || e.Name != "Disjuntor" {
			t.Errorf("unexpected material %+v, %v", e, err)
		}
		return nil
	})
}
