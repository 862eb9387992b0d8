package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithProfessionalID_ProfessionalIDFromCtx(t *testing.T) {
	id := uuid.New()
	ctx := WithProfessionalID(context.Background(), id)

	got, err := ProfessionalIDFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Fatalf("expected %v, got %v", id, got)
	}
}

func TestProfessionalIDFromCtx_EmptyContext(t *testing.T) {
	_, err := ProfessionalIDFromCtx(context.Background())
	if !errors.Is(err, ErrProfessionalIDNotFound) {
		t.Fatalf("expected ErrProfessionalIDNotFound, got %v", err)
	}
}

func TestProfessionalIDFromCtx_NilUUID(t *testing.T) {
	ctx := WithProfessionalID(context.Background(), uuid.Nil)
	_, err := ProfessionalIDFromCtx(ctx)
	if !errors.Is(err, ErrProfessionalIDNotFound) {
		t.Fatalf("expected ErrProfessionalIDNotFound for uuid.Nil, got %v", err)
	}
}

func TestTokenFromCtx(t *testing.T) {
	if _, ok := TokenFromCtx(context.Background()); ok {
		t.Fatal("expected no token in empty context")
	}
	tok, ok := TokenFromCtx(withToken(context.Background(), "abc"))
	if !ok || tok != "abc" {
		t.Fatalf("got %q, %v", tok, ok)
	}
}
