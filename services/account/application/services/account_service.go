package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/voltdesk/pkg/logger"
	accountdomain "github.com/ghuser/voltdesk/services/account/domain"
	"github.com/ghuser/voltdesk/services/account/domain/models"
	"github.com/ghuser/voltdesk/services/account/domain/repositories"
)

// Tokens issues and revokes bearer tokens. *auth.TokenStore implements it.
type Tokens interface {
	Issue(ctx context.Context, professionalID uuid.UUID) (string, error)
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// RegisterInput holds the registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
}

// Session is a signed-in professional with the bearer token to send on
// subsequent requests.
type Session struct {
	Professional *models.Professional
	Token        string
	ExpiresAt    time.Time
}

// AccountService orchestrates registration, login and logout.
type AccountService struct {
	repo   repositories.ProfessionalRepository
	tokens Tokens
	log    logger.Logger
	cost   int
	now    func() time.Time

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAccountService returns an AccountService hashing passwords at the given
// bcrypt cost.
func NewAccountService(repo repositories.ProfessionalRepository, tokens Tokens, log logger.Logger, cost int) *AccountService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("voltdesk-dummy-password"), cost)
	if err != nil {
		panic(fmt.Sprintf("account: generate dummy hash: %v", err))
	}
	return &AccountService{repo: repo, tokens: tokens, log: log, cost: cost, now: time.Now, dummyHash: dummy}
}

// Register creates a professional and signs them in.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email, err := models.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	p, err := models.NewProfessional(in.Name, email, in.Phone, in.Password, s.cost, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save professional: %w", err)
	}
	s.log.InfoContext(ctx, "professional registered", "professional_id", p.ID)
	return s.issue(ctx, p)
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	addr, err := models.NewEmail(email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, accountdomain.ErrInvalidCredentials
	}
	p, err := s.repo.GetByEmail(ctx, addr)
	if errors.Is(err, accountdomain.ErrProfessionalNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, accountdomain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find professional: %w", err)
	}
	ok, err := p.CheckPassword(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.WarnContext(ctx, "login rejected", "professional_id", p.ID)
		return nil, accountdomain.ErrInvalidCredentials
	}
	return s.issue(ctx, p)
}

// Logout revokes token. Revoking an unknown token is not an error.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Me returns the authenticated professional.
func (s *AccountService) Me(ctx context.Context, professionalID uuid.UUID) (*models.Professional, error) {
	p, err := s.repo.GetByID(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("get professional: %w", err)
	}
	return p, nil
}

func (s *AccountService) issue(ctx context.Context, p *models.Professional) (*Session, error) {
	token, err := s.tokens.Issue(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Professional: p, Token: token, ExpiresAt: s.now().Add(s.tokens.TTL()).UTC()}, nil
}
