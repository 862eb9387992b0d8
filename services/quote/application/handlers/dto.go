package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/application/services"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
)

// CreateQuoteRequest is the request body for POST /budgets and
// POST /material-lists. valid_until and discount apply to budgets only;
// budget_id to material lists only.
type CreateQuoteRequest struct {
	ClientID   uuid.UUID        `json:"client_id"   validate:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name       string           `json:"name"        validate:"required,max=255" example:"Reforma elétrica - Apto 42"`
	Notes      *string          `json:"notes"       validate:"omitempty,max=5000"`
	ValidUntil *time.Time       `json:"valid_until" example:"2024-02-15T00:00:00Z"`
	Discount   *DiscountRequest `json:"discount"`
	BudgetID   *uuid.UUID       `json:"budget_id"`
} // @name CreateQuoteRequest

// UpdateQuoteRequest is a partial update; omitted fields keep their value.
type UpdateQuoteRequest struct {
	Name       *string    `json:"name"        validate:"omitempty,max=255"`
	Notes      *string    `json:"notes"       validate:"omitempty,max=5000"`
	ClientID   *uuid.UUID `json:"client_id"`
	ValidUntil *time.Time `json:"valid_until"`
	BudgetID   *uuid.UUID `json:"budget_id"`
} // @name UpdateQuoteRequest

// DiscountRequest is the body of PUT /budgets/{id}/discount.
type DiscountRequest struct {
	Value  decimal.Decimal `json:"value"  swaggertype:"number" example:"10"`
	Type   string          `json:"type"   validate:"required" enums:"PERCENTAGE,FIXED" example:"PERCENTAGE"`
	Reason *string         `json:"reason" validate:"omitempty,max=500" example:"Cliente recorrente"`
} // @name DiscountRequest

func (d *DiscountRequest) input() services.DiscountInput {
	return services.DiscountInput{Value: d.Value, Type: d.Type, Reason: d.Reason}
}

// AddItemRequest is the body of POST /{kind}/{id}/items. When service_id or
// material_id is set the catalog entry fills name, unit price, unit and
// description; any field sent here overrides it.
type AddItemRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,max=255" example:"Tomada 20A"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Quantity    decimal.Decimal  `json:"quantity"    swaggertype:"number" example:"3"`
	UnitPrice   *decimal.Decimal `json:"unit_price"  swaggertype:"number" example:"15.90"`
	Unit        *string          `json:"unit"        validate:"omitempty,max=16" example:"un"`
	ServiceID   *uuid.UUID       `json:"service_id"`
	MaterialID  *uuid.UUID       `json:"material_id"`
} // @name AddItemRequest

// UpdateItemRequest is a partial update of an item.
type UpdateItemRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Quantity    *decimal.Decimal `json:"quantity"    swaggertype:"number"`
	UnitPrice   *decimal.Decimal `json:"unit_price"  swaggertype:"number"`
	Unit        *string          `json:"unit"        validate:"omitempty,max=16"`
} // @name UpdateItemRequest

// StatusRequest is the body of PATCH /{kind}/{id}/status.
type StatusRequest struct {
	Status string  `json:"status" validate:"required" enums:"PENDING,APPROVED,REJECTED,EXPIRED" example:"APPROVED"`
	Reason *string `json:"reason" validate:"omitempty,max=500"`
} // @name StatusRequest

// NameRequest is the optional body of duplicate and derive. A blank name
// yields the default one.
type NameRequest struct {
	Name string `json:"name" validate:"max=255" example:"Reforma elétrica - cópia"`
} // @name NameRequest

// RejectRequest is the optional body of the public reject route.
type RejectRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500" example:"Valor acima do orçamento"`
} // @name RejectRequest

// DiscountResponse describes the discount policy of a budget.
type DiscountResponse struct {
	Value  decimal.Decimal `json:"value" swaggertype:"number"`
	Type   string          `json:"type"`
	Reason *string         `json:"reason,omitempty"`
} // @name DiscountResponse

// ItemResponse is the JSON shape of an item.
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"    swaggertype:"number"`
	UnitPrice   decimal.Decimal `json:"unit_price"  swaggertype:"number"`
	TotalPrice  decimal.Decimal `json:"total_price" swaggertype:"number"`
	Unit        string          `json:"unit"`
	ServiceID   *uuid.UUID      `json:"service_id,omitempty"`
	MaterialID  *uuid.UUID      `json:"material_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
} // @name ItemResponse

// QuoteResponse is the JSON shape of a budget or material list. Items is
// only present on single-resource reads and mutations.
type QuoteResponse struct {
	ID              uuid.UUID         `json:"id"`
	Kind            string            `json:"kind" enums:"budget,material_list"`
	ClientID        uuid.UUID         `json:"client_id"`
	BudgetID        *uuid.UUID        `json:"budget_id,omitempty"`
	Name            string            `json:"name"`
	Notes           *string           `json:"notes,omitempty"`
	ValidUntil      *time.Time        `json:"valid_until,omitempty"`
	Status          string            `json:"status"`
	Subtotal        decimal.Decimal   `json:"subtotal"        swaggertype:"number"`
	Discount        *DiscountResponse `json:"discount,omitempty"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount" swaggertype:"number"`
	TotalValue      decimal.Decimal   `json:"total_value"     swaggertype:"number"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty"`
	RejectedAt      *time.Time        `json:"rejected_at,omitempty"`
	RejectionReason *string           `json:"rejection_reason,omitempty"`
	AccessLink      string            `json:"access_link"`
	PublicURL       string            `json:"public_url"`
	Items           []ItemResponse    `json:"items,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
} // @name QuoteResponse

// ItemMutationResponse returns the touched item with the recalculated aggregate.
type ItemMutationResponse struct {
	Item  ItemResponse  `json:"item"`
	Quote QuoteResponse `json:"quote"`
} // @name ItemMutationResponse

// DecisionResponse is returned by the public approve and reject routes.
type DecisionResponse struct {
	ID              uuid.UUID  `json:"id"`
	Status          string     `json:"status"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
} // @name DecisionResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"only PENDING budgets/material lists may be edited"`
} // @name ErrorResponse

func toItemResponse(it *models.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		TotalPrice:  it.TotalPrice,
		Unit:        it.Unit,
		ServiceID:   it.ServiceID,
		MaterialID:  it.MaterialID,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toQuoteResponse(q *models.Quote, publicBaseURL string) QuoteResponse {
	resp := QuoteResponse{
		ID:              q.ID,
		Kind:            q.Kind.String(),
		ClientID:        q.ClientID,
		BudgetID:        q.BudgetID,
		Name:            q.Name,
		Notes:           q.Notes,
		ValidUntil:      q.ValidUntil,
		Status:          q.Status.String(),
		Subtotal:        q.Subtotal,
		DiscountAmount:  q.Subtotal.Sub(q.TotalValue),
		TotalValue:      q.TotalValue,
		ApprovedAt:      q.ApprovedAt,
		RejectedAt:      q.RejectedAt,
		RejectionReason: q.RejectionReason,
		AccessLink:      q.AccessLink,
		PublicURL:       services.PublicURL(publicBaseURL, q),
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
	if q.Discount != nil {
		resp.Discount = &DiscountResponse{Value: q.Discount.Value, Type: string(q.Discount.Type), Reason: q.Discount.Reason}
	}
	if len(q.Items) > 0 {
		resp.Items = make([]ItemResponse, len(q.Items))
		for i := range q.Items {
			resp.Items[i] = toItemResponse(&q.Items[i])
		}
	}
	return resp
}

func toDecisionResponse(q *models.Quote) DecisionResponse {
	return DecisionResponse{
		ID:              q.ID,
		Status:          q.Status.String(),
		ApprovedAt:      q.ApprovedAt,
		RejectedAt:      q.RejectedAt,
		RejectionReason: q.RejectionReason,
	}
}
