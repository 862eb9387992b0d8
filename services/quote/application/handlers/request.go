package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/pkg/auth"
	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/voltdesk/pkg/validator"
	"github.com/ghuser/voltdesk/services/quote/domain/models"
	"github.com/ghuser/voltdesk/services/quote/domain/repositories"
)

// scope returns the authenticated professional and, when withID is set, the
// {id} path parameter. On failure it writes the response and reports false.
func scope(w http.ResponseWriter, r *http.Request, withID bool) (professionalID, id uuid.UUID, ok bool) {
	professionalID, err := auth.ProfessionalIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return uuid.Nil, uuid.Nil, false
	}
	if withID {
		if id, err = httpx.URLParamUUID(r, "id"); err != nil {
			errhttp.WriteError(w, err)
			return uuid.Nil, uuid.Nil, false
		}
	}
	return professionalID, id, true
}

// listFilter parses status, client_id, budget_id, limit and offset.
func listFilter(r *http.Request) (repositories.ListFilter, error) {
	var f repositories.ListFilter
	if s := r.URL.Query().Get("status"); s != "" {
		st, err := models.ParseStatus(s)
		if err != nil {
			return f, err
		}
		f.Status = &st
	}
	var err error
	if f.ClientID, err = httpx.QueryUUID(r, "client_id"); err != nil {
		return f, err
	}
	if f.BudgetID, err = httpx.QueryUUID(r, "budget_id"); err != nil {
		return f, err
	}
	f.Limit, f.Offset = httpx.Pagination(r)
	return f, nil
}

// optionalBody decodes an optional JSON body. An empty body leaves dst untouched.
func optionalBody[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	if r.ContentLength == 0 {
		return true
	}
	req, ok := pkgvalidator.ValidateRequest[T](w, r)
	if !ok {
		return false
	}
	*dst = *req
	return true
}
