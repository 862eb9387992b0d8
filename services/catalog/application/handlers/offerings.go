package handlers

import (
	"net/http"

	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/voltdesk/pkg/validator"
	"github.com/ghuser/voltdesk/services/catalog/application/services"
	"github.com/ghuser/voltdesk/services/catalog/domain/models"
)

func serviceResponse(s *models.Service) OfferingResponse { return toOfferingResponse(s.Offering, nil) }

func materialResponse(m *models.Material) OfferingResponse {
	return toOfferingResponse(m.Offering, m.Brand)
}

// ServiceHandler serves the /services endpoints.
type ServiceHandler struct {
	svc *services.ServiceService
}

// NewServiceHandler returns a ServiceHandler backed by the given services.
func NewServiceHandler(svcs *services.Services) *ServiceHandler {
	return &ServiceHandler{svc: svcs.Services}
}

// List returns a page of services ordered by name.
//
//	@Summary	List services
//	@Tags		services
//	@Produce	json
//	@Security	BearerAuth
//	@Param		q		query		string	false	"Name contains"
//	@Param		limit	query		int		false	"Page size (max 100)"
//	@Param		offset	query		int		false	"Offset"
//	@Success	200		{object}	httpx.Page[OfferingResponse]
//	@Router		/services [get]
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	prof, _, ok := scope(w, r, false)
	if !ok {
		return
	}
	opts := queryOpts(r)
	out, total, err := h.svc.List(r.Context(), prof, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page(out, total, opts, serviceResponse))
}

// Create adds a service.
//
//	@Summary	Create service
//	@Tags		services
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		OfferingRequest	true	"Service"
//	@Success	201		{object}	OfferingResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/services [post]
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	prof, _, ok := scope(w, r, false)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[OfferingRequest](w, r)
	if !ok {
		return
	}
	s, err := h.svc.Create(r.Context(), prof, req.fields())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, serviceResponse(s))
}

//	@Summary	Get service
//	@Tags		services
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Service ID"
//	@Success	200	{object}	OfferingResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/services/{id} [get]
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	s, err := h.svc.Get(r.Context(), prof, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serviceResponse(s))
}

//	@Summary	Update service
//	@Tags		services
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"Service ID"
//	@Param		request	body		OfferingRequest	true	"Service"
//	@Success	200		{object}	OfferingResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/services/{id} [put]
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[OfferingRequest](w, r)
	if !ok {
		return
	}
	s, err := h.svc.Update(r.Context(), prof, id, req.fields())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serviceResponse(s))
}

//	@Summary	Delete service
//	@Tags		services
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Service ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/services/{id} [delete]
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// MaterialHandler serves the /materials endpoints.
type MaterialHandler struct {
	svc *services.MaterialService
}

// NewMaterialHandler returns a MaterialHandler backed by the given services.
func NewMaterialHandler(svcs *services.Services) *MaterialHandler {
	return &MaterialHandler{svc: svcs.Materials}
}

//	@Summary	List materials
//	@Tags		materials
//	@Produce	json
//	@Security	BearerAuth
//	@Param		q		query		string	false	"Name contains"
//	@Param		limit	query		int		false	"Page size (max 100)"
//	@Param		offset	query		int		false	"Offset"
//	@Success	200		{object}	httpx.Page[OfferingResponse]
//	@Router		/materials [get]
func (h *MaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	prof, _, ok := scope(w, r, false)
	if !ok {
		return
	}
	opts := queryOpts(r)
	out, total, err := h.svc.List(r.Context(), prof, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page(out, total, opts, materialResponse))
}

//	@Summary	Create material
//	@Tags		materials
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		OfferingRequest	true	"Material"
//	@Success	201		{object}	OfferingResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/materials [post]
func (h *MaterialHandler) Create(w http.ResponseWriter, r *http.Request) {
	prof, _, ok := scope(w, r, false)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[OfferingRequest](w, r)
	if !ok {
		return
	}
	m, err := h.svc.Create(r.Context(), prof, req.fields(), req.Brand)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, materialResponse(m))
}

//	@Summary	Get material
//	@Tags		materials
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Material ID"
//	@Success	200	{object}	OfferingResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/materials/{id} [get]
func (h *MaterialHandler) Get(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	m, err := h.svc.Get(r.Context(), prof, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, materialResponse(m))
}

//	@Summary	Update material
//	@Tags		materials
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"Material ID"
//	@Param		request	body		OfferingRequest	true	"Material"
//	@Success	200		{object}	OfferingResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/materials/{id} [put]
func (h *MaterialHandler) Update(w http.ResponseWriter, r *http.Request) {
	prof, id, ok := scope(w, r, true)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[OfferingRequest](w, r)
	if !ok {
		return
	}
	m, err := h.svc.Update(r.Context(), prof, id, req.fields(), req.Brand)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, materialResponse(m))
}

//	@Summary	Delete material
//	@Tags		materials
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Material ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/materials/{id} [delete]
func (h *MaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
