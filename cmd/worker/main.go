package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.temporal.io/sdk/worker"

	"github.com/ghuser/voltdesk/pkg/app"
	"github.com/ghuser/voltdesk/pkg/cache"
	"github.com/ghuser/voltdesk/pkg/config"
	"github.com/ghuser/voltdesk/pkg/database"
	"github.com/ghuser/voltdesk/pkg/events"
	"github.com/ghuser/voltdesk/pkg/logger"
	"github.com/ghuser/voltdesk/pkg/telemetry"
	pkgworkflows "github.com/ghuser/voltdesk/pkg/workflows"
	quotesvcs "github.com/ghuser/voltdesk/services/quote/application/services"
	quoteworkflows "github.com/ghuser/voltdesk/services/quote/application/workflows"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg).With("process", "worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(pool.DB(), cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Views:    cache.NewPublicViewCache(redisClient, cfg.PublicViewTTL),
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if cfg.TemporalEnabled {
		temporalClient, err := pkgworkflows.NewTemporalClient(ctx, cfg, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.Temporal = temporalClient

		w, err := startExpirySweep(ctx, appConfig)
		if err != nil {
			log.Error("failed to start expiry sweep", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
	} else {
		log.Info("temporal disabled, budget expiry sweep not scheduled")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// startExpirySweep registers the expiry workflow on a Temporal worker and
// makes sure its recurring schedule exists.
func startExpirySweep(ctx context.Context, a *app.Application) (worker.Worker, error) {
	svcs := quotesvcs.New(a)

	w := a.Temporal.NewWorker()
	quoteworkflows.Register(w, svcs.Budgets)
	if err := w.Start(); err != nil {
		return nil, err
	}
	err := a.Temporal.EnsureSchedule(ctx, quoteworkflows.ExpirySweepScheduleID, a.Config.ExpirySweepInterval, quoteworkflows.ScheduleAction())
	if err != nil {
		w.Stop()
		return nil, err
	}
	a.Logger.Info("expiry sweep scheduled", "every", a.Config.ExpirySweepInterval, "task_queue", a.Temporal.TaskQueue)
	return w, nil
}
