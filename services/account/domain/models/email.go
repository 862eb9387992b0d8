package models

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/ghuser/voltdesk/services/account/domain"
)

// Email is a value object holding a trimmed, lower-cased address.
type Email string

const maxEmailLength = 254

// NewEmail normalizes s and rejects anything that is not a bare address.
func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > maxEmailLength {
		return "", fmt.Errorf("%w: must be 1-%d characters", domain.ErrInvalidEmail, maxEmailLength)
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidEmail, s)
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }
