package handlers

import (
	"net/http"

	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/voltdesk/pkg/validator"
	"github.com/ghuser/voltdesk/services/account/application/services"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,max=254" example:"ana@example.com"`
	Password string `json:"password" validate:"required,max=72"  example:"disjuntor40"`
} // @name LoginRequest

// PostLoginHandler handles POST /auth/login requests.
type PostLoginHandler struct {
	svc *services.Services
}

// NewPostLoginHandler returns a PostLoginHandler backed by the given services.
func NewPostLoginHandler(svc *services.Services) *PostLoginHandler {
	return &PostLoginHandler{svc: svc}
}

// Execute exchanges credentials for a bearer token.
//
//	@Summary		Log in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	SessionResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (h *PostLoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	s, err := h.svc.Account.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSessionResponse(s))
}
