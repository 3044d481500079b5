package services

import (
	"github.com/ghuser/restockhub/pkg/app"
	"github.com/ghuser/restockhub/pkg/cache"
	"github.com/ghuser/restockhub/services/restock/infrastructure/idgen"
	"github.com/ghuser/restockhub/services/restock/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Session *SessionService
}

// New wires all restock application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewSessionRepository(a.Db, a.EventBus)
	products := postgres.NewProductRepository(a.Db)
	suppliers := postgres.NewSupplierRepository(a.Db)
	sessionCache := cache.NewSessionCache(a.Redis)

	svc := NewSessionService(repo, products, suppliers, idgen.New(), sessionCache)
	if a.TemporalClient != nil && a.Config != nil {
		svc = svc.WithFollowUps(a.TemporalClient, a.Config.FollowUpDelay)
	}

	return &Services{Session: svc}
}
