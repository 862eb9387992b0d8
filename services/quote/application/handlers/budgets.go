package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/voltdesk/pkg/validator"
	"github.com/ghuser/voltdesk/services/quote/application/services"
)

// BudgetHandler serves the budget-only endpoints.
type BudgetHandler struct {
	budgets *services.BudgetService
	lists   *services.MaterialListService
	baseURL string
}

// NewBudgetHandler returns a BudgetHandler backed by the given services.
func NewBudgetHandler(svcs *services.Services, publicBaseURL string) *BudgetHandler {
	return &BudgetHandler{budgets: svcs.Budgets, lists: svcs.MaterialLists, baseURL: publicBaseURL}
}

// ApplyDiscount sets the discount policy of a PENDING budget.
//
//	@Summary	Apply discount
//	@Tags		budgets
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"Budget UUID"
//	@Param		request	body		DiscountRequest	true	"Discount"
//	@Success	200		{object}	QuoteResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/budgets/{id}/discount [put]
func (h *BudgetHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[DiscountRequest](w, r)
	if !ok {
		return
	}
	q, err := h.budgets.ApplyDiscount(r.Context(), prof, id, req.input())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toQuoteResponse(q, h.baseURL))
}

// RemoveDiscount clears the discount of a PENDING budget.
//
//	@Summary	Remove discount
//	@Tags		budgets
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Budget UUID"
//	@Success	200	{object}	QuoteResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/budgets/{id}/discount [delete]
func (h *BudgetHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	q, err := h.budgets.RemoveDiscount(r.Context(), prof, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toQuoteResponse(q, h.baseURL))
}

// PDF renders the budget as a PDF document.
//
//	@Summary	Export budget as PDF
//	@Tags		budgets
//	@Produce	application/pdf
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Budget UUID"
//	@Success	200	{file}		binary
//	@Failure	404	{object}	ErrorResponse
//	@Router		/budgets/{id}/pdf [get]
func (h *BudgetHandler) PDF(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.budgets.RenderPDF(r.Context(), prof, id, &buf); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="orcamento-%s.pdf"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// DeriveMaterialList creates a material list from the material items of the
// budget.
//
//	@Summary	Derive material list
//	@Tags		budgets
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string		true	"Budget UUID"
//	@Param		request	body		NameRequest	false	"Name of the list"
//	@Success	201		{object}	QuoteResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/budgets/{id}/material-list [post]
func (h *BudgetHandler) DeriveMaterialList(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	var req NameRequest
	if !optionalBody(w, r, &req) {
		return
	}
	q, err := h.lists.DeriveFromBudget(r.Context(), prof, id, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toQuoteResponse(q, h.baseURL))
}
