package handlers

import (
	"net/http"

	"github.com/ghuser/voltdesk/pkg/auth"
	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	"github.com/ghuser/voltdesk/services/account/application/services"
)

// GetMeHandler handles GET /auth/me requests.
type GetMeHandler struct {
	svc *services.Services
}

// NewGetMeHandler returns a GetMeHandler backed by the given services.
func NewGetMeHandler(svc *services.Services) *GetMeHandler {
	return &GetMeHandler{svc: svc}
}

// Execute returns the authenticated professional.
//
//	@Summary	Current professional
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	ProfessionalResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/me [get]
func (h *GetMeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	professionalID, err := auth.ProfessionalIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	p, err := h.svc.Account.Me(r.Context(), professionalID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProfessionalResponse(p))
}
