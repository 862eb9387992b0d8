package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const (
	professionalIDKey contextKey = "professional_id"
	tokenKey          contextKey = "token"
)

// ErrProfessionalIDNotFound is returned when no professional ID exists in the
// request context. Handlers should return 401 when this error occurs.
var ErrProfessionalIDNotFound = errors.New("professional_id not found in context")

// ProfessionalIDFromCtx extracts the authenticated professional ID from the request context.
// Returns uuid.Nil and ErrProfessionalIDNotFound if none is set (unauthenticated request).
func ProfessionalIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(professionalIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrProfessionalIDNotFound
	}
	return id, nil
}

// WithProfessionalID returns a new context with the given professional ID attached.
// Used by RequireAuth after verifying the bearer token.
func WithProfessionalID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, professionalIDKey, id)
}

// TokenFromCtx returns the raw bearer token RequireAuth accepted, so logout can revoke it.
func TokenFromCtx(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey).(string)
	return tok, ok && tok != ""
}

func withToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}
