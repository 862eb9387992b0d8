package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/pkg/database"
	"github.com/ghuser/voltdesk/pkg/logger"
	"github.com/ghuser/voltdesk/pkg/migrator"
	catalogdomain "github.com/ghuser/voltdesk/services/catalog/domain"
	"github.com/ghuser/voltdesk/services/catalog/domain/models"
	"github.com/ghuser/voltdesk/services/catalog/domain/repositories"
)

func TestListParams(t *testing.T) {
	prof := uuid.New()
	tests := []struct {
		name             string
		opts             repositories.QueryOpts
		wantLimit, wantO int32
	}{
		{"zero limit uses max page", repositories.QueryOpts{}, maxPageSize, 0},
		{"limit kept", repositories.QueryOpts{Limit: 10, Offset: 20}, 10, 20},
		{"limit clamped", repositories.QueryOpts{Limit: 1000}, maxPageSize, 0},
		{"negative offset", repositories.QueryOpts{Limit: 5, Offset: -3}, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := listParams(prof, tt.opts)
			if p.Limit != tt.wantLimit || p.Offset != tt.wantO || p.ProfessionalID != prof {
				t.Fatalf("unexpected params %+v", p)
			}
		})
	}
}

func TestAffected(t *testing.T) {
	if err := affected(1, nil, catalogdomain.ErrClientNotFound, "op"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := affected(0, nil, catalogdomain.ErrClientNotFound, "op"); !errors.Is(err, catalogdomain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	boom := errors.New("boom")
	if err := affected(0, boom, catalogdomain.ErrClientNotFound, "op"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestMaterialRowRoundTrip(t *testing.T) {
	brand := "Steck"
	m, err := models.NewMaterial(uuid.New(), models.OfferingFields{Name: "Disjuntor 20A", Price: decimal.RequireFromString("18.90")}, &brand, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	got := rowToMaterial(materialRow(m))
	if got.ID != m.ID || got.Name != m.Name || !got.Price.Equal(m.Price) || *got.Brand != brand || got.Description != nil {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

// Integration tests: skipped unless DATABASE_URL is set.
func TestClientRepositoryIntegration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	ctx := context.Background()
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close() //nolint:errcheck
	if err := migrator.Up(ctx, sqlDB, os.DirFS("../../../../../migrations/core")); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prof := uuid.New()
	if _, err := sqlDB.Exec(`INSERT INTO professionals (id, name, email, password_hash) VALUES ($1, 'Teste', $2, 'x')`, prof, prof.String()+"@example.com"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _, _ = sqlDB.Exec(`DELETE FROM professionals WHERE id = $1`, prof) })

	repo := NewClientRepository(database.New(sqlDB, logger.Nop()))
	c, _ := models.NewClient(prof, models.ClientFields{Name: "Maria"}, time.Now().UTC().Truncate(time.Microsecond))
	if err := repo.Save(ctx, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	list, total, err := repo.List(ctx, prof, repositories.QueryOpts{Search: "mar", Limit: 10})
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("list: %v total=%d", err, total)
	}
	if _, err := repo.GetByID(ctx, uuid.New(), c.ID); !errors.Is(err, catalogdomain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound for foreign professional, got %v", err)
	}

	if _, err := sqlDB.Exec(`INSERT INTO budgets (id, professional_id, client_id, name, access_link) VALUES ($1, $2, $3, 'B', $4)`,
		uuid.New(), prof, c.ID, uuid.NewString()); err != nil {
		t.Fatalf("insert budget: %v", err)
	}
	if err := repo.Delete(ctx, prof, c.ID); !errors.Is(err, catalogdomain.ErrClientInUse) {
		t.Fatalf("expected ErrClientInUse, got %v", err)
	}
}
