package services

import (
	"github.com/ghuser/voltdesk/pkg/app"
	"github.com/ghuser/voltdesk/services/quote/infrastructure/pdf"
	"github.com/ghuser/voltdesk/services/quote/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Budgets       *BudgetService
	MaterialLists *MaterialListService
	Public        *PublicService
}

// New wires the quote services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	d := Deps{
		Store: postgres.NewStore(a.Db, a.EventBus),
		Log:   a.Logger.With("context", "quote"),
	}
	if a.Views != nil {
		d.Views = a.Views
	}
	return NewServices(d, pdf.NewGenerator(), a.Config.PublicBaseURL)
}

// NewServices wires the quote services around an arbitrary Store. The three
// services share one set of metric instruments.
func NewServices(d Deps, renderer BudgetRenderer, publicBaseURL string) *Services {
	m := newEngineMetrics()
	budgets := newBudgetService(d, renderer, publicBaseURL, m)
	lists := newMaterialListService(d, m)
	return &Services{
		Budgets:       budgets,
		MaterialLists: lists,
		Public:        NewPublicService(budgets, lists),
	}
}
