package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/voltdesk/pkg/app"
	"github.com/ghuser/voltdesk/pkg/auth"
	"github.com/ghuser/voltdesk/pkg/httpx"
	"github.com/ghuser/voltdesk/services/account/application/handlers"
	appsvcs "github.com/ghuser/voltdesk/services/account/application/services"
)

// credentialAttemptsPerMinute throttles register and login per client IP.
const credentialAttemptsPerMinute = 10

// AccountRoutes registers the /auth endpoints. Register and login are public;
// logout and me run behind RequireAuth.
func AccountRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httpx.PublicRateLimit(credentialAttemptsPerMinute))
			r.Post("/register", handlers.NewPostRegisterHandler(svcs).Execute)
			r.Post("/login", handlers.NewPostLoginHandler(svcs).Execute)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.Tokens, a.Logger))
			r.Post("/logout", handlers.NewPostLogoutHandler(svcs).Execute)
			r.Get("/me", handlers.NewGetMeHandler(svcs).Execute)
		})
	})
}
