package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/restockd/pkg/app"
	"github.com/ghuser/restockd/pkg/cache"
	"github.com/ghuser/restockd/pkg/config"
	"github.com/ghuser/restockd/pkg/database"
	"github.com/ghuser/restockd/pkg/events"
	"github.com/ghuser/restockd/pkg/logger"
	"github.com/ghuser/restockd/pkg/mailer"
	"github.com/ghuser/restockd/pkg/telemetry"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
	reorderEvents "github.com/ghuser/restockd/services/reorder/domain/events"
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

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
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

	//temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	//if err != nil {
	//	log.Error("failed to initialize temporal client", "error", err)
	//	os.Exit(1) //nolint:gocritic
	//}
	//defer temporalClient.Close()

	appConfig := &app.Application{
		Cfg:      cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Mailer:   mailer.New(cfg),
		//TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	tickCtx, cancelTick := context.WithCancel(ctx)
	go runReorderTicker(tickCtx, appConfig)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelTick()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, reorderEvents.TopicOrderCreated, handleOrderCreated(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", reorderEvents.TopicOrderCreated,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{reorderEvents.TopicOrderCreated})
	return nil
}

// handleOrderCreated returns a handler for reorder.order.created events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis read-model cache with an order summary; the event payload
// carries no line items, so the first detail read upgrades the entry to a
// complete one.
func handleOrderCreated(a *app.Application) func(context.Context, *message.Message) error {
	orderCache := cache.NewOrderCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt reorderEvents.OrderCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := orderCache.Set(ctx, &cache.CachedOrder{
			ID:          evt.OrderID,
			OrgID:       evt.OrgID,
			Number:      evt.Number,
			VendorName:  evt.VendorName,
			Status:      evt.Status,
			TotalAmount: evt.TotalAmount,
			CreatedAt:   evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for order.created",
				"order_id", evt.OrderID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"order_id", evt.OrderID, "org_id", evt.OrgID)
		}

		return nil
	}
}

// runReorderTicker evaluates every auto-reorder-enabled org on a fixed
// interval. Runs until ctx is cancelled. Per-org failures are logged inside
// RunTick and never stop the loop.
func runReorderTicker(ctx context.Context, a *app.Application) {
	svcs := appsvcs.New(a)

	ticker := time.NewTicker(a.Cfg.ReorderInterval)
	defer ticker.Stop()

	a.Logger.Info("reorder ticker started", "interval", a.Cfg.ReorderInterval)

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("reorder ticker shutting down")
			return
		case <-ticker.C:
			if err := svcs.Reorder.RunTick(ctx); err != nil {
				a.Logger.ErrorContext(ctx, "reorder tick failed", "error", err)
			}
		}
	}
}
