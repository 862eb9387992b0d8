package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/catalog/domain/models"
)

// ClientRequest is the request body for POST /clients and PUT /clients/{id}.
type ClientRequest struct {
	Name     string  `json:"name"     validate:"required,max=255" example:"Maria Souza"`
	Email    *string `json:"email"    validate:"omitempty,max=254" example:"maria@example.com"`
	Phone    *string `json:"phone"    validate:"omitempty,max=32" example:"+55 11 98888-7777"`
	Document *string `json:"document" validate:"omitempty,max=32" example:"123.456.789-00"`
	Address  *string `json:"address"  validate:"omitempty,max=500" example:"Rua das Flores, 100"`
	Notes    *string `json:"notes"    validate:"omitempty,max=2000"`
} // @name ClientRequest

func (r *ClientRequest) fields() models.ClientFields {
	return models.ClientFields{Name: r.Name, Email: r.Email, Phone: r.Phone, Document: r.Document, Address: r.Address, Notes: r.Notes}
}

// ClientResponse is the JSON shape of a client.
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Document  *string   `json:"document,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
} // @name ClientResponse

func toClientResponse(c *models.Client) ClientResponse {
	return ClientResponse{
		ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Document: c.Document,
		Address: c.Address, Notes: c.Notes, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

// OfferingRequest is the request body for creating or replacing a service
// or material. Brand is ignored for services.
type OfferingRequest struct {
	Name        string          `json:"name"        validate:"required,max=255" example:"Instalação de tomada"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price"       validate:"gte=0" swaggertype:"number" example:"45.00"`
	Unit        string          `json:"unit"        validate:"max=16" example:"un"`
	Brand       *string         `json:"brand"       validate:"omitempty,max=120" example:"Tramontina"`
} // @name OfferingRequest

func (r *OfferingRequest) fields() models.OfferingFields {
	return models.OfferingFields{Name: r.Name, Description: r.Description, Price: r.Price, Unit: r.Unit}
}

// OfferingResponse is the JSON shape of a service or material.
type OfferingResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Unit        string          `json:"unit"`
	Brand       *string         `json:"brand,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
} // @name OfferingResponse

func toOfferingResponse(o models.Offering, brand *string) OfferingResponse {
	return OfferingResponse{
		ID: o.ID, Name: o.Name, Description: o.Description, Price: o.Price, Unit: o.Unit,
		Brand: brand, CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"client not found"`
} // @name ErrorResponse
