package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/voltdesk/pkg/auth"
	"github.com/ghuser/voltdesk/pkg/logger"
	"github.com/ghuser/voltdesk/services/account/application/handlers"
	"github.com/ghuser/voltdesk/services/account/application/services"
	accountdomain "github.com/ghuser/voltdesk/services/account/domain"
	"github.com/ghuser/voltdesk/services/account/domain/models"
)

type repo struct {
	mu sync.Mutex
	ps []models.Professional
}

func (r *repo) Save(_ context.Context, p *models.Professional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.ps {
		if o.Email == p.Email {
			return accountdomain.ErrEmailTaken
		}
	}
	r.ps = append(r.ps, *p)
	return nil
}

func (r *repo) find(match func(models.Professional) bool) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.ps {
		if match(p) {
			return &p, nil
		}
	}
	return nil, accountdomain.ErrProfessionalNotFound
}

func (r *repo) GetByID(_ context.Context, id uuid.UUID) (*models.Professional, error) {
	return r.find(func(p models.Professional) bool { return p.ID == id })
}

func (r *repo) GetByEmail(_ context.Context, e models.Email) (*models.Professional, error) {
	return r.find(func(p models.Professional) bool { return p.Email == e })
}

type tokens struct {
	mu sync.Mutex
	m  map[string]uuid.UUID
}

func (t *tokens) Issue(_ context.Context, id uuid.UUID) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tok := uuid.NewString()
	t.m[tok] = id
	return tok, nil
}

func (t *tokens) Verify(_ context.Context, tok string) (uuid.UUID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.m[tok]
	if !ok {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return id, nil
}

func (t *tokens) Revoke(_ context.Context, tok string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, tok)
	return nil
}

func (t *tokens) TTL() time.Duration { return time.Hour }

func newRouter() chi.Router {
	toks := &tokens{m: map[string]uuid.UUID{}}
	svcs := &services.Services{Account: services.NewAccountService(&repo{}, toks, logger.Nop(), bcrypt.MinCost)}
	r := chi.NewRouter()
	r.Post("/auth/register", handlers.NewPostRegisterHandler(svcs).Execute)
	r.Post("/auth/login", handlers.NewPostLoginHandler(svcs).Execute)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(toks, logger.Nop()))
		r.Post("/auth/logout", handlers.NewPostLogoutHandler(svcs).Execute)
		r.Get("/auth/me", handlers.NewGetMeHandler(svcs).Execute)
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAuthFlow(t *testing.T) {
	h := newRouter()

	w := do(t, h, http.MethodPost, "/auth/register", "", `{"name":"Ana Lima","email":"ana@example.com","password":"disjuntor40"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body)
	}
	var session handlers.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Token == "" || session.Professional.Email != "ana@example.com" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatal("response must not expose password material")
	}

	if w := do(t, h, http.MethodPost, "/auth/register", "", `{"name":"Ana","email":"ana@example.com","password":"disjuntor40"}`); w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", w.Code)
	}

	if w := do(t, h, http.MethodPost, "/auth/login", "", `{"email":"ana@example.com","password":"errada123"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/auth/me", session.Token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}

	if w := do(t, h, http.MethodPost, "/auth/logout", session.Token, ""); w.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/auth/me", session.Token, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", w.Code)
	}
}

func TestRegister_ValidationFailure(t *testing.T) {
	h := newRouter()
	w := do(t, h, http.MethodPost, "/auth/register", "", `{"name":"","email":"nope","password":"x"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	for _, f := range []string{"name", "email", "password"} {
		if _, ok := body.Fields[f]; !ok {
			t.Errorf("missing validation error for %q", f)
		}
	}
}
