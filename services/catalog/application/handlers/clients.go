package handlers

import (
	"net/http"

	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/voltdesk/pkg/validator"
	"github.com/ghuser/voltdesk/services/catalog/application/services"
)

// ClientHandler serves the /clients endpoints.
type ClientHandler struct {
	svc *services.ClientService
}

// NewClientHandler returns a ClientHandler backed by the given services.
func NewClientHandler(svcs *services.Services) *ClientHandler {
	return &ClientHandler{svc: svcs.Clients}
}

// List returns a page of clients ordered by name.
//
//	@Summary	List clients
//	@Tags		clients
//	@Produce	json
//	@Security	BearerAuth
//	@Param		q		query		string	false	"Name contains"
//	@Param		limit	query		int		false	"Page size (max 100)"
//	@Param		offset	query		int		false	"Offset"
//	@Success	200		{object}	httpx.Page[ClientResponse]
//	@Failure	401		{object}	ErrorResponse
//	@Router		/clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	prof, _, ok := scope(w, r, false)
	if !ok {
		return
	}
	opts := queryOpts(r)
	cs, total, err := h.svc.List(r.Context(), prof, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page(cs, total, opts, toClientResponse))
}

// Create adds a client.
//
//	@Summary	Create client
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		ClientRequest	true	"Client"
//	@Success	201		{object}	ClientResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	prof, _, ok := scope(w, r, false)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ClientRequest](w, r)
	if !ok {
		return
	}
	c, err := h.svc.Create(r.Context(), prof, req.fields())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toClientResponse(c))
}

// Get returns one client.
//
//	@Summary	Get client
//	@Tags		clients
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Client ID"
//	@Success	200	{object}	ClientResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/clients/{id} [get]
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	c, err := h.svc.Get(r.Context(), prof, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toClientResponse(c))
}

// Update replaces a client's fields.
//
//	@Summary	Update client
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"Client ID"
//	@Param		request	body		ClientRequest	true	"Client"
//	@Success	200		{object}	ClientResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ClientRequest](w, r)
	if !ok {
		return
	}
	c, err := h.svc.Update(r.Context(), prof, id, req.fields())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toClientResponse(c))
}

// Delete removes a client that no budget or material list references.
//
//	@Summary	Delete client
//	@Tags		clients
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Client ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
