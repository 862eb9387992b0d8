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
	"github.com/ghuser/voltdesk/services/quote/domain"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
)

func TestDiscountColumns(t *testing.T) {
	value, typ, reason := discountColumns(nil)
	if value.Valid || typ.Valid || reason.Valid {
		t.Fatal("nil discount must map to three NULLs")
	}
	if fromDiscountColumns(value, typ, reason) != nil {
		t.Fatal("NULL columns must map to nil discount")
	}

	r := "fidelidade"
	d := &models.Discount{Value: decimal.RequireFromString("7.50"), Type: models.DiscountFixed, Reason: &r}
	got := fromDiscountColumns(discountColumns(d))
	if got == nil || !got.Value.Equal(d.Value) || got.Type != d.Type || *got.Reason != r {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLifecycleColumns(t *testing.T) {
	now := time.Now()
	l := lifecycle("REJECTED", sql.NullTime{}, sql.NullTime{Time: now, Valid: true}, sql.NullString{String: "caro", Valid: true})
	if l.Status != models.StatusRejected || l.ApprovedAt != nil || l.RejectedAt == nil || *l.RejectionReason != "caro" {
		t.Fatalf("unexpected lifecycle: %+v", l)
	}
}

func TestNotFound(t *testing.T) {
	if err := notFound(sql.ErrNoRows, domain.ErrClientNotFound, "query client"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	boom := errors.New("conn reset")
	if err := notFound(boom, domain.ErrClientNotFound, "query client"); !errors.Is(err, boom) || errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}

// Integration tests: skipped unless DATABASE_URL is set.
func TestStoreIntegration(t *testing.T) {
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

	prof, client, material := uuid.New(), uuid.New(), uuid.New()
	mustExec(t, sqlDB, `INSERT INTO professionals (id, name, email, password_hash) VALUES ($1, 'Teste', $2, 'x')`, prof, prof.String()+"@example.com")
	mustExec(t, sqlDB, `INSERT INTO clients (id, professional_id, name) VALUES ($1, $2, 'Cliente')`, client, prof)
	mustExec(t, sqlDB, `INSERT INTO materials (id, professional_id, name, price, unit) VALUES ($1, $2, 'Cabo', 3.20, 'm')`, material, prof)
	t.Cleanup(func() { mustExec(t, sqlDB, `DELETE FROM professionals WHERE id = $1`, prof) })

	store := NewStore(database.New(sqlDB, logger.Nop()), nil)
	now := time.Now().UTC().Truncate(time.Microsecond)

	budget, err := models.NewQuote(models.KindBudget, prof, client, "Integração", now)
	if err != nil {
		t.Fatal(err)
	}
	item, err := models.NewItem(budget.ID, models.ItemSpec{Name: "Cabo", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("3.20"), MaterialID: &material}, now)
	if err != nil {
		t.Fatal(err)
	}

	err = store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		repo := tx.Quotes(models.KindBudget)
		if err := repo.Insert(ctx, budget); err != nil {
			return err
		}
		return repo.InsertItem(ctx, item)
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	err = store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
		repo := tx.Quotes(models.KindBudget)
		q, err := repo.Get(ctx, prof, budget.ID, true)
		if err != nil {
			return err
		}
		items, err := repo.Items(ctx, q.ID)
		if err != nil {
			return err
		}
		if len(items) != 1 || !items[0].TotalPrice.Equal(decimal.NewFromInt(32)) || *items[0].MaterialID != material {
			t.Errorf("unexpected items: %+v", items)
		}
		if _, err := tx.Catalog().Material(ctx, prof, material); err != nil {
			t.Errorf("catalog material: %v", err)
		}
		if _, err := repo.Get(ctx, uuid.New(), budget.ID, false); !errors.Is(err, domain.ErrBudgetNotFound) {
			t.Errorf("expected ErrBudgetNotFound for foreign professional, got %v", err)
		}
		return repo.DeleteItem(ctx, q.ID, uuid.New())
	})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	list, total, err := func() ([]*models.Quote, int, error) {
		var (
			l []*models.Quote
			n int
		)
		err := store.Do(ctx, func(ctx context.Context, tx repositories.Tx) error {
			var err error
			l, n, err = tx.Quotes(models.KindBudget).List(ctx, prof, repositories.ListFilter{Limit: 10})
			return err
		})
		return l, n, err
	}()
	if err != nil || total != 1 || len(list) != 1 || list[0].ID != budget.ID {
		t.Fatalf("list: %v, total=%d, %+v", err, total, list)
	}
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
