package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/restockhub/pkg/cache"
	"github.com/ghuser/restockhub/pkg/config"
	"github.com/ghuser/restockhub/pkg/database"
	"github.com/ghuser/restockhub/pkg/events"
	"github.com/ghuser/restockhub/pkg/logger"
	"github.com/ghuser/restockhub/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each service's route registration during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing session", "session_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil when Temporal is not configured
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
}
