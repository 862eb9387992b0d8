package app

import (
	"github.com/ghuser/voltdesk/pkg/auth"
	"github.com/ghuser/voltdesk/pkg/cache"
	"github.com/ghuser/voltdesk/pkg/config"
	"github.com/ghuser/voltdesk/pkg/database"
	"github.com/ghuser/voltdesk/pkg/events"
	"github.com/ghuser/voltdesk/pkg/logger"
	"github.com/ghuser/voltdesk/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, request_id and professional_id are injected
// automatically:
//
//	app.Logger.InfoContext(ctx, "budget approved", "budget_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient
	Views    *cache.PublicViewCache
	Temporal *workflows.TemporalClient // nil unless TEMPORAL_ENABLED
	Tokens   *auth.TokenStore          // nil in the worker process
}
