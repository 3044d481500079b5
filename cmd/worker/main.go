package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/restockhub/pkg/app"
	"github.com/ghuser/restockhub/pkg/cache"
	"github.com/ghuser/restockhub/pkg/config"
	"github.com/ghuser/restockhub/pkg/database"
	"github.com/ghuser/restockhub/pkg/events"
	"github.com/ghuser/restockhub/pkg/logger"
	"github.com/ghuser/restockhub/pkg/telemetry"
	"github.com/ghuser/restockhub/pkg/workflows"
	restockEvents "github.com/ghuser/restockhub/services/restock/domain/events"
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

	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Error("failed to initialize temporal client", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalClient.Close()

	appConfig := &app.Application{
		Config:         cfg,
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	followUpWorker := newFollowUpWorker(temporalClient, eventBus)
	if err := followUpWorker.Start(); err != nil {
		log.Error("failed to start temporal worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer followUpWorker.Stop()
	log.Info("temporal worker started", "task_queue", workflows.TaskQueueFollowUps)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// newFollowUpWorker builds the Temporal worker hosting the follow-up workflow
// and its activities.
func newFollowUpWorker(tc *workflows.TemporalClient, bus *events.EventBus) worker.Worker {
	w := worker.New(tc.Client, workflows.TaskQueueFollowUps, worker.Options{})
	w.RegisterWorkflow(workflows.FollowUpWorkflow)
	w.RegisterActivity(&workflows.FollowUpActivities{Bus: bus})
	return w
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more events need worker-side processing.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	subscriptions := []struct {
		topic   string
		handler func(context.Context, *message.Message) error
	}{
		{restockEvents.TopicSessionCreated, handleSessionCreated(a)},
		{restockEvents.TopicSessionEmailsGenerated, handleSessionStatusChanged(a)},
		{restockEvents.TopicSessionSent, handleSessionStatusChanged(a)},
		{restockEvents.TopicSessionFollowUpDue, handleFollowUpDue(a)},
	}

	topics := make([]string, 0, len(subscriptions))
	for _, sub := range subscriptions {
		errCh, err := a.EventBus.Subscribe(ctx, sub.topic, sub.handler)
		if err != nil {
			return err
		}
		topics = append(topics, sub.topic)

		// Drain subscriber errors in background so the channel never blocks.
		topic := sub.topic
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleSessionCreated warms the Redis read-model cache for a fresh session.
// Handlers must be idempotent: EventBus retries up to 3x on failure.
func handleSessionCreated(a *app.Application) func(context.Context, *message.Message) error {
	sessionCache := cache.NewSessionCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt restockEvents.SessionCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		cached := &cache.CachedSession{
			ID:        evt.SessionID,
			UserID:    evt.UserID,
			Name:      evt.Name,
			Status:    "draft",
			Items:     json.RawMessage("[]"),
			CreatedAt: evt.OccurredAt,
		}
		if err := sessionCache.Set(ctx, cached); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for session.created",
				"session_id", evt.SessionID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"session_id", evt.SessionID, "user_id", evt.UserID)
		}

		return nil
	}
}

// handleSessionStatusChanged invalidates the cached snapshot. The event does
// not carry items, so the next read repopulates the cache from Postgres.
func handleSessionStatusChanged(a *app.Application) func(context.Context, *message.Message) error {
	sessionCache := cache.NewSessionCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt restockEvents.SessionStatusChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := sessionCache.Delete(ctx, evt.UserID, evt.SessionID); err != nil {
			a.Logger.WarnContext(ctx, "cache invalidation failed",
				"session_id", evt.SessionID, "error", err)
		}

		a.Logger.InfoContext(ctx, "session status changed",
			"session_id", evt.SessionID, "status", evt.Status,
			"total_items", evt.TotalItems, "supplier_count", evt.SupplierCount)
		return nil
	}
}

// handleFollowUpDue surfaces the reminder. Wiring an email notification here
// is the natural next step once an outbound mail provider is chosen.
func handleFollowUpDue(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt restockEvents.SessionFollowUpDueEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		a.Logger.InfoContext(ctx, "supplier follow-up due",
			"session_id", evt.SessionID, "user_id", evt.UserID, "sent_at", evt.SentAt)
		return nil
	}
}
