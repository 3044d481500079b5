package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockhub/pkg/app"
	"github.com/ghuser/restockhub/pkg/auth"
	"github.com/ghuser/restockhub/services/restock/application/handlers"
	appsvcs "github.com/ghuser/restockhub/services/restock/application/services"
)

// SessionRoutes registers restock session endpoints on the provided chi router.
// All routes require an authenticated user.
func SessionRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", handlers.NewPostSessionHandler(svcs).Execute)
			r.Get("/", handlers.NewGetSessionsHandler(svcs).Execute)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", handlers.NewGetSessionHandler(svcs).Execute)
				r.Delete("/", handlers.NewDeleteSessionHandler(svcs).Execute)
				r.Patch("/name", handlers.NewPatchSessionNameHandler(svcs).Execute)
				r.Get("/summary", handlers.NewGetSessionSummaryHandler(svcs).Execute)
				r.Post("/generate", handlers.NewPostSessionGenerateHandler(svcs).Execute)
				r.Post("/send", handlers.NewPostSessionSendHandler(svcs).Execute)

				r.Route("/items", func(r chi.Router) {
					r.Post("/", handlers.NewPostSessionItemHandler(svcs).Execute)
					r.Patch("/{productID}", handlers.NewPatchSessionItemHandler(svcs).Execute)
					r.Delete("/{productID}", handlers.NewDeleteSessionItemHandler(svcs).Execute)
				})
			})
		})
	})
}
