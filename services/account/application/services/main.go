package services

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/voltdesk/pkg/app"
	"github.com/ghuser/voltdesk/services/account/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Account *AccountService
}

// New wires the account services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewProfessionalRepository(a.Db, a.EventBus)
	return &Services{
		Account: NewAccountService(repo, a.Tokens, a.Logger.With("context", "account"), bcrypt.DefaultCost),
	}
}
