package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/account/application/services"
	"github.com/ghuser/voltdesk/services/account/domain/models"
)

// ProfessionalResponse is the public shape of a professional.
type ProfessionalResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string    `json:"name"       example:"Ana Lima"`
	Email     string    `json:"email"      example:"ana@example.com"`
	Phone     *string   `json:"phone,omitempty" example:"+55 11 99999-0000"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
} // @name ProfessionalResponse

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Token        string               `json:"token"      example:"MTcwNTMxMjAwMHxEdi1CQkFFQ180SUFBUkFCRUFBQV8..."`
	ExpiresAt    time.Time            `json:"expires_at" example:"2024-02-14T10:30:00Z"`
	Professional ProfessionalResponse `json:"professional"`
} // @name SessionResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid email or password"`
} // @name ErrorResponse

func toProfessionalResponse(p *models.Professional) ProfessionalResponse {
	return ProfessionalResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email.String(),
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}

func toSessionResponse(s *services.Session) SessionResponse {
	return SessionResponse{
		Token:        s.Token,
		ExpiresAt:    s.ExpiresAt,
		Professional: toProfessionalResponse(s.Professional),
	}
}
