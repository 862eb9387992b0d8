package handlers

import (
	"net/http"

	"github.com/ghuser/voltdesk/pkg/auth"
	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	"github.com/ghuser/voltdesk/services/account/application/services"
)

// PostLogoutHandler handles POST /auth/logout requests.
type PostLogoutHandler struct {
	svc *services.Services
}

// NewPostLogoutHandler returns a PostLogoutHandler backed by the given services.
func NewPostLogoutHandler(svc *services.Services) *PostLogoutHandler {
	return &PostLogoutHandler{svc: svc}
}

// Execute revokes the bearer token carried by the request.
//
//	@Summary	Log out
//	@Tags		auth
//	@Security	BearerAuth
//	@Success	204
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/logout [post]
func (h *PostLogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.TokenFromCtx(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.svc.Account.Logout(r.Context(), token); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}
