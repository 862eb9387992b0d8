package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/voltdesk/pkg/app"
	"github.com/ghuser/voltdesk/pkg/httpx"
	"github.com/ghuser/voltdesk/services/quote/application/handlers"
	appsvcs "github.com/ghuser/voltdesk/services/quote/application/services"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
)

// publicRequestsPerMinute throttles the access-link routes per client IP.
const publicRequestsPerMinute = 60

// QuoteRoutes registers /budgets and /material-lists. The caller mounts them
// behind RequireAuth.
func QuoteRoutes(r chi.Router, a *app.Application) {
	mountQuoteRoutes(r, appsvcs.New(a), a.Config.PublicBaseURL)
}

// PublicQuoteRoutes registers the rate-limited access-link routes under /public.
func PublicQuoteRoutes(r chi.Router, a *app.Application) {
	mountPublicRoutes(r, appsvcs.New(a), publicRequestsPerMinute)
}

func mountQuoteRoutes(r chi.Router, svcs *appsvcs.Services, baseURL string) {
	budgets := handlers.NewBudgetQuoteHandler(svcs, baseURL)
	budgetOnly := handlers.NewBudgetHandler(svcs, baseURL)
	r.Route("/budgets", func(r chi.Router) {
		sharedRoutes(r, budgets)
		r.Put("/{id}/discount", budgetOnly.ApplyDiscount)
		r.Delete("/{id}/discount", budgetOnly.RemoveDiscount)
		r.Get("/{id}/pdf", budgetOnly.PDF)
		r.Post("/{id}/material-list", budgetOnly.DeriveMaterialList)
	})

	lists := handlers.NewMaterialListQuoteHandler(svcs, baseURL)
	r.Route("/material-lists", func(r chi.Router) {
		sharedRoutes(r, lists)
	})
}

func sharedRoutes(r chi.Router, h *handlers.QuoteHandler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/items", h.AddItem)
	r.Put("/{id}/items/{itemID}", h.UpdateItem)
	r.Delete("/{id}/items/{itemID}", h.RemoveItem)
	r.Patch("/{id}/status", h.SetStatus)
	r.Post("/{id}/duplicate", h.Duplicate)
}

func mountPublicRoutes(r chi.Router, svcs *appsvcs.Services, perMinute int) {
	r.Route("/public", func(r chi.Router) {
		r.Use(httpx.PublicRateLimit(perMinute))
		for prefix, kind := range map[string]models.Kind{
			"/budgets":        models.KindBudget,
			"/material-lists": models.KindMaterialList,
		} {
			h := handlers.NewPublicHandler(svcs, kind)
			r.Route(prefix+"/{id}", func(r chi.Router) {
				r.Get("/", h.View)
				r.Post("/approve", h.Approve)
				r.Post("/reject", h.Reject)
			})
		}
	})
}
