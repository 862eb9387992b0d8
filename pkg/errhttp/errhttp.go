// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/ghuser/voltdesk/pkg/auth"
	"github.com/ghuser/voltdesk/pkg/httpx"
	accountdomain "github.com/ghuser/voltdesk/services/account/domain"
	catalogdomain "github.com/ghuser/voltdesk/services/catalog/domain"
	quotedomain "github.com/ghuser/voltdesk/services/quote/domain"
)

var hideInternal atomic.Bool

// HideInternalErrors replaces 5xx messages with the status text. Enable it in
// production.
func HideInternalErrors(on bool) { hideInternal.Store(on) }

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, hideInternal.Load()))
}

func mapErrorToStatus(err error) int {
	switch {
	case isAny(err,
		quotedomain.ErrBudgetNotFound, quotedomain.ErrMaterialListNotFound, quotedomain.ErrItemNotFound,
		quotedomain.ErrClientNotFound, quotedomain.ErrServiceNotFound, quotedomain.ErrMaterialNotFound,
		catalogdomain.ErrClientNotFound, catalogdomain.ErrServiceNotFound, catalogdomain.ErrMaterialNotFound,
		accountdomain.ErrProfessionalNotFound):
		return http.StatusNotFound // 404
	case isAny(err,
		quotedomain.ErrInvalidAccessLink, accountdomain.ErrInvalidCredentials,
		auth.ErrInvalidToken, auth.ErrProfessionalIDNotFound):
		return http.StatusUnauthorized // 401
	case isAny(err, accountdomain.ErrEmailTaken, quotedomain.ErrBudgetInUse, catalogdomain.ErrClientInUse):
		return http.StatusConflict // 409
	case isAny(err,
		quotedomain.ErrNotEditable,
		quotedomain.ErrInvalidName, quotedomain.ErrInvalidQuantity, quotedomain.ErrInvalidPrice,
		quotedomain.ErrUnitPriceRequired, quotedomain.ErrInvalidDiscount, quotedomain.ErrInvalidStatus,
		catalogdomain.ErrInvalidName, catalogdomain.ErrInvalidPrice, catalogdomain.ErrInvalidEmail,
		accountdomain.ErrInvalidEmail, accountdomain.ErrInvalidName, accountdomain.ErrWeakPassword,
		httpx.ErrInvalidParam):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
