package handlers

import (
	"net/http"

	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	"github.com/ghuser/voltdesk/services/quote/application/services"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
)

// PublicHandler serves the unauthenticated access-link routes of one kind.
// The link travels in the access_link query parameter.
type PublicHandler struct {
	svc  *services.PublicService
	kind models.Kind
}

// NewPublicHandler returns a PublicHandler for kind.
func NewPublicHandler(svcs *services.Services, kind models.Kind) *PublicHandler {
	return &PublicHandler{svc: svcs.Public, kind: kind}
}

// View returns the client-facing view.
//
//	@Summary	Public view
//	@Tags		public
//	@Produce	json
//	@Param		id			path		string	true	"UUID"
//	@Param		access_link	query		string	true	"Access link"
//	@Success	200			{object}	services.PublicView
//	@Failure	401			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	429			{object}	ErrorResponse
//	@Router		/public/budgets/{id} [get]
//	@Router		/public/material-lists/{id} [get]
func (h *PublicHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	v, err := h.svc.View(r.Context(), h.kind, id, r.URL.Query().Get("access_link"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

// Approve records the client's approval.
//
//	@Summary	Public approve
//	@Tags		public
//	@Produce	json
//	@Param		id			path		string	true	"UUID"
//	@Param		access_link	query		string	true	"Access link"
//	@Success	200			{object}	DecisionResponse
//	@Failure	401			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/public/budgets/{id}/approve [post]
//	@Router		/public/material-lists/{id}/approve [post]
func (h *PublicHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	q, err := h.svc.Approve(r.Context(), h.kind, id, r.URL.Query().Get("access_link"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDecisionResponse(q))
}

// Reject records the client's rejection with an optional reason.
//
//	@Summary	Public reject
//	@Tags		public
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string			true	"UUID"
//	@Param		access_link	query		string			true	"Access link"
//	@Param		request		body		RejectRequest	false	"Reason"
//	@Success	200			{object}	DecisionResponse
//	@Failure	401			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/public/budgets/{id}/reject [post]
//	@Router		/public/material-lists/{id}/reject [post]
func (h *PublicHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	var req RejectRequest
	if !optionalBody(w, r, &req) {
		return
	}
	q, err := h.svc.Reject(r.Context(), h.kind, id, r.URL.Query().Get("access_link"), req.Reason)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDecisionResponse(q))
}
