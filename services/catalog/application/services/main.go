package services

import (
	"github.com/ghuser/voltdesk/pkg/app"
	"github.com/ghuser/voltdesk/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Clients   *ClientService
	Services  *ServiceService
	Materials *MaterialService
}

// New wires the catalog services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Clients:   NewClientService(postgres.NewClientRepository(a.Db)),
		Services:  NewServiceService(postgres.NewServiceRepository(a.Db)),
		Materials: NewMaterialService(postgres.NewMaterialRepository(a.Db)),
	}
}
