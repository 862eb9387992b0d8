package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ghuser/voltdesk/pkg/httpx"
	"github.com/ghuser/voltdesk/pkg/logger"
)

// RequireAuth is a chi middleware that enforces authentication via
// "Authorization: Bearer <token>". It verifies the token, injects the
// professional ID into the request context and binds it to log records.
// Returns 401 Unauthorized if the header is missing or the token is invalid,
// and 503 Service Unavailable when the token store cannot be reached.
//
// After this middleware, handlers can safely call auth.ProfessionalIDFromCtx(r.Context()).
func RequireAuth(tokens Verifier, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			professionalID, err := tokens.Verify(r.Context(), token)
			if errors.Is(err, ErrInvalidToken) {
				log.WarnContext(r.Context(), "rejected bearer token")
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if err != nil {
				log.ErrorContext(r.Context(), "verify bearer token", "error", err)
				httpx.JSONError(w, http.StatusServiceUnavailable, "authentication unavailable")
				return
			}

			ctx := WithProfessionalID(r.Context(), professionalID)
			ctx = withToken(ctx, token)
			ctx = logger.ContextWithAttrs(ctx, "professional_id", professionalID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
