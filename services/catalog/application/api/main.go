package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/voltdesk/pkg/app"
	"github.com/ghuser/voltdesk/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/voltdesk/services/catalog/application/services"
)

// CatalogRoutes registers the client, service and material endpoints. The
// caller mounts them behind RequireAuth.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	clients := handlers.NewClientHandler(svcs)
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", clients.List)
		r.Post("/", clients.Create)
		r.Get("/{id}", clients.Get)
		r.Put("/{id}", clients.Update)
		r.Delete("/{id}", clients.Delete)
	})

	offered := handlers.NewServiceHandler(svcs)
	r.Route("/services", func(r chi.Router) {
		r.Get("/", offered.List)
		r.Post("/", offered.Create)
		r.Get("/{id}", offered.Get)
		r.Put("/{id}", offered.Update)
		r.Delete("/{id}", offered.Delete)
	})

	materials := handlers.NewMaterialHandler(svcs)
	r.Route("/materials", func(r chi.Router) {
		r.Get("/", materials.List)
		r.Post("/", materials.Create)
		r.Get("/{id}", materials.Get)
		r.Put("/{id}", materials.Update)
		r.Delete("/{id}", materials.Delete)
	})
}
