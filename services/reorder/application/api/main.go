package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restockd/pkg/app"
	"github.com/ghuser/restockd/pkg/auth"
	"github.com/ghuser/restockd/services/reorder/application/handlers"
	appsvcs "github.com/ghuser/restockd/services/reorder/application/services"
)

// ReorderRoutes registers replenishment endpoints on the provided chi router.
// All routes require an authenticated org session.
func ReorderRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewGetItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Put("/{id}/reorder-settings", handlers.NewPutReorderSettingsHandler(svcs).Execute)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", handlers.NewGetVendorsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostVendorHandler(svcs).Execute)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", handlers.NewGetOrdersHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetOrderHandler(svcs).Execute)
		})

		r.Route("/profile", func(r chi.Router) {
			profile := handlers.NewProfileHandler(svcs)
			r.Get("/", profile.Get)
			r.Put("/", profile.Put)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", handlers.NewGetNotificationsHandler(svcs).Execute)
		})

		r.Route("/reorder", func(r chi.Router) {
			r.Post("/run", handlers.NewPostReorderRunHandler(svcs).Execute)
		})
	})
}
