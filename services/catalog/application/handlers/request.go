package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/pkg/auth"
	"github.com/ghuser/voltdesk/pkg/errhttp"
	"github.com/ghuser/voltdesk/pkg/httpx"
	"github.com/ghuser/voltdesk/services/catalog/domain/repositories"
)

// scope returns the authenticated professional and, when withID is set, the
// {id} path parameter. It writes the error response itself and reports false
// on failure.
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

func queryOpts(r *http.Request) repositories.QueryOpts {
	limit, offset := httpx.Pagination(r)
	return repositories.QueryOpts{Search: r.URL.Query().Get("q"), Limit: limit, Offset: offset}
}

func page[T, M any](items []*M, total int, opts repositories.QueryOpts, conv func(*M) T) httpx.Page[T] {
	data := make([]T, len(items))
	for i, it := range items {
		data[i] = conv(it)
	}
	return httpx.Page[T]{Data: data, Total: total, Limit: opts.Limit, Offset: opts.Offset}
}
