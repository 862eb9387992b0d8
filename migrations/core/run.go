// Command core applies the voltdesk schema migrations.
package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/voltdesk/pkg/config"
	"github.com/ghuser/voltdesk/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, MigrationsFS); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
