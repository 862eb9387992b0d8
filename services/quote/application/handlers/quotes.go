package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/voltdesk/pkg/validator"
	"github.com/ghuser/voltdesk/services/quote/application/services"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
)

// quoteService is the operation set budgets and material lists share.
type quoteService interface {
	Create(ctx context.Context, professionalID uuid.UUID, in services.CreateInput) (*models.Quote, error)
	Get(ctx context.Context, professionalID, id uuid.UUID) (*models.Quote, error)
	List(ctx context.Context, professionalID uuid.UUID, f repositories.ListFilter) ([]*models.Quote, int, error)
	Update(ctx context.Context, professionalID, id uuid.UUID, in services.UpdateInput) (*models.Quote, error)
	Delete(ctx context.Context, professionalID, id uuid.UUID) error
	AddItem(ctx context.Context, professionalID, id uuid.UUID, in services.ItemInput) (*models.Item, *models.Quote, error)
	UpdateItem(ctx context.Context, professionalID, id, itemID uuid.UUID, p models.ItemPatch) (*models.Item, *models.Quote, error)
	RemoveItem(ctx context.Context, professionalID, id, itemID uuid.UUID) (*models.Quote, error)
	SetStatus(ctx context.Context, professionalID, id uuid.UUID, to models.Status, reason *string) (*models.Quote, error)
	Duplicate(ctx context.Context, professionalID, id uuid.UUID, name string) (*models.Quote, error)
}

// QuoteHandler serves the endpoints common to /budgets and /material-lists.
type QuoteHandler struct {
	svc     quoteService
	baseURL string
}

// NewBudgetQuoteHandler returns the shared handler bound to budgets.
func NewBudgetQuoteHandler(svcs *services.Services, publicBaseURL string) *QuoteHandler {
	return &QuoteHandler{svc: svcs.Budgets, baseURL: publicBaseURL}
}

// NewMaterialListQuoteHandler returns the shared handler bound to material lists.
func NewMaterialListQuoteHandler(svcs *services.Services, publicBaseURL string) *QuoteHandler {
	return &QuoteHandler{svc: svcs.MaterialLists, baseURL: publicBaseURL}
}

func (h *QuoteHandler) respond(w http.ResponseWriter, status int, q *models.Quote) {
	httpx.JSON(w, status, toQuoteResponse(q, h.baseURL))
}

// List returns a page of the professional's budgets or material lists,
// newest first.
//
//	@Summary	List budgets or material lists
//	@Tags		quotes
//	@Produce	json
//	@Security	BearerAuth
//	@Param		status		query		string	false	"PENDING, APPROVED, REJECTED or EXPIRED"
//	@Param		client_id	query		string	false	"Client UUID"
//	@Param		budget_id	query		string	false	"Budget UUID (material lists only)"
//	@Param		limit		query		int		false	"Page size (max 100)"
//	@Param		offset		query		int		false	"Offset"
//	@Success	200			{object}	httpx.Page[QuoteResponse]
//	@Failure	400			{object}	ErrorResponse
//	@Failure	401			{object}	ErrorResponse
//	@Router		/budgets [get]
//	@Router		/material-lists [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	prof, _, ok := scope(w, r, false)
	if !ok {
		return
	}
	f, err := listFilter(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	qs, total, err := h.svc.List(r.Context(), prof, f)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	data := make([]QuoteResponse, len(qs))
	for i, q := range qs {
		data[i] = toQuoteResponse(q, h.baseURL)
	}
	httpx.JSON(w, http.StatusOK, httpx.Page[QuoteResponse]{Data: data, Total: total, Limit: f.Limit, Offset: f.Offset})
}

// Create opens a PENDING budget or material list for one of the
// professional's clients.
//
//	@Summary	Create budget or material list
//	@Tags		quotes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		CreateQuoteRequest	true	"Header fields"
//	@Success	201		{object}	QuoteResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/budgets [post]
//	@Router		/material-lists [post]
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	prof, _, ok := scope(w, r, false)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[CreateQuoteRequest](w, r)
	if !ok {
		return
	}
	in := services.CreateInput{
		ClientID:   req.ClientID,
		Name:       req.Name,
		Notes:      req.Notes,
		ValidUntil: req.ValidUntil,
		BudgetID:   req.BudgetID,
	}
	if req.Discount != nil {
		d := req.Discount.input()
		in.Discount = &d
	}
	q, err := h.svc.Create(r.Context(), prof, in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, q)
}

// Get returns the aggregate with its items.
//
//	@Summary	Get budget or material list
//	@Tags		quotes
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"UUID"
//	@Success	200	{object}	QuoteResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/budgets/{id} [get]
//	@Router		/material-lists/{id} [get]
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	q, err := h.svc.Get(r.Context(), prof, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusOK, q)
}

// Update changes header fields of a PENDING aggregate.
//
//	@Summary	Update budget or material list
//	@Tags		quotes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"UUID"
//	@Param		request	body		UpdateQuoteRequest	true	"Fields to change"
//	@Success	200		{object}	QuoteResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/budgets/{id} [put]
//	@Router		/material-lists/{id} [put]
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateQuoteRequest](w, r)
	if !ok {
		return
	}
	q, err := h.svc.Update(r.Context(), prof, id, services.UpdateInput{
		Name:       req.Name,
		Notes:      req.Notes,
		ClientID:   req.ClientID,
		ValidUntil: req.ValidUntil,
		BudgetID:   req.BudgetID,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusOK, q)
}

// Delete removes the aggregate and its items.
//
//	@Summary	Delete budget or material list
//	@Tags		quotes
//	@Security	BearerAuth
//	@Param		id	path	string	true	"UUID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/budgets/{id} [delete]
//	@Router		/material-lists/{id} [delete]
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), prof, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}

// AddItem appends an item and returns it with the recalculated totals.
//
//	@Summary	Add item
//	@Tags		quotes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"UUID"
//	@Param		request	body		AddItemRequest	true	"Item"
//	@Success	201		{object}	ItemMutationResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/budgets/{id}/items [post]
//	@Router		/material-lists/{id}/items [post]
func (h *QuoteHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AddItemRequest](w, r)
	if !ok {
		return
	}
	it, q, err := h.svc.AddItem(r.Context(), prof, id, services.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Unit:        req.Unit,
		ServiceID:   req.ServiceID,
		MaterialID:  req.MaterialID,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ItemMutationResponse{Item: toItemResponse(it), Quote: toQuoteResponse(q, h.baseURL)})
}

// UpdateItem patches one item and returns it with the recalculated totals.
//
//	@Summary	Update item
//	@Tags		quotes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"UUID"
//	@Param		itemID	path		string				true	"Item UUID"
//	@Param		request	body		UpdateItemRequest	true	"Fields to change"
//	@Success	200		{object}	ItemMutationResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/budgets/{id}/items/{itemID} [put]
//	@Router		/material-lists/{id}/items/{itemID} [put]
func (h *QuoteHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	itemID, err := httpx.URLParamUUID(r, "itemID")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}
	it, q, err := h.svc.UpdateItem(r.Context(), prof, id, itemID, models.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Unit:        req.Unit,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ItemMutationResponse{Item: toItemResponse(it), Quote: toQuoteResponse(q, h.baseURL)})
}

// RemoveItem deletes one item and returns the recalculated aggregate.
//
//	@Summary	Remove item
//	@Tags		quotes
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"UUID"
//	@Param		itemID	path		string	true	"Item UUID"
//	@Success	200		{object}	QuoteResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/budgets/{id}/items/{itemID} [delete]
//	@Router		/material-lists/{id}/items/{itemID} [delete]
func (h *QuoteHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	itemID, err := httpx.URLParamUUID(r, "itemID")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	q, err := h.svc.RemoveItem(r.Context(), prof, id, itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusOK, q)
}

// SetStatus moves the aggregate to another lifecycle status.
//
//	@Summary	Change status
//	@Tags		quotes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"UUID"
//	@Param		request	body		StatusRequest	true	"Target status"
//	@Success	200		{object}	QuoteResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/budgets/{id}/status [patch]
//	@Router		/material-lists/{id}/status [patch]
func (h *QuoteHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[StatusRequest](w, r)
	if !ok {
		return
	}
	to, err := models.ParseStatus(req.Status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	q, err := h.svc.SetStatus(r.Context(), prof, id, to, req.Reason)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusOK, q)
}

// Duplicate copies the aggregate and its items into a new PENDING one.
//
//	@Summary	Duplicate budget or material list
//	@Tags		quotes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string		true	"UUID"
//	@Param		request	body		NameRequest	false	"Name of the copy"
//	@Success	201		{object}	QuoteResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/budgets/{id}/duplicate [post]
//	@Router		/material-lists/{id}/duplicate [post]
func (h *QuoteHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	var req NameRequest
	if !optionalBody(w, r, &req) {
		return
	}
	q, err := h.svc.Duplicate(r.Context(), prof, id, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, q)
}
