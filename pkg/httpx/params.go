package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ErrInvalidParam is returned when a path or query parameter cannot be parsed.
var ErrInvalidParam = errors.New("invalid parameter")

// URLParamUUID parses the chi path parameter name as a UUID.
func URLParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidParam, errors.New(name+" must be a valid UUID"))
	}
	return id, nil
}

// QueryUUID parses an optional UUID query parameter. A missing value yields nil.
func QueryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidParam, errors.New(name+" must be a valid UUID"))
	}
	return &id, nil
}

// Pagination reads limit/offset query parameters, clamping limit to [1,100]
// and defaulting it to 20.
func Pagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = min(v, maxLimit)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
