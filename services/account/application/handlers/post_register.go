package handlers

import (
	"net/http"

	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/voltdesk/pkg/validator"
	"github.com/ghuser/voltdesk/services/account/application/services"
)

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Name     string  `json:"name"     validate:"required,max=255" example:"Ana Lima"`
	Email    string  `json:"email"    validate:"required,email,max=254" example:"ana@example.com"`
	Password string  `json:"password" validate:"required,min=8,max=72" example:"disjuntor40"`
	Phone    *string `json:"phone"    validate:"omitempty,max=32" example:"+55 11 99999-0000"`
} // @name RegisterRequest

// PostRegisterHandler handles POST /auth/register requests.
type PostRegisterHandler struct {
	svc *services.Services
}

// NewPostRegisterHandler returns a PostRegisterHandler backed by the given services.
func NewPostRegisterHandler(svc *services.Services) *PostRegisterHandler {
	return &PostRegisterHandler{svc: svc}
}

// Execute registers a professional and returns a bearer token.
//
//	@Summary		Register
//	@Description	Creates a professional account and signs it in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration request"
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/auth/register [post]
func (h *PostRegisterHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterRequest](w, r)
	if !ok {
		return
	}

	s, err := h.svc.Account.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toSessionResponse(s))
}
