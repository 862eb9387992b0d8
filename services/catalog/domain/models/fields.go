package models

import (
	"fmt"
	"strings"

	"github.com/ghuser/voltdesk/services/catalog/domain"
)

const maxNameLength = 255

func validName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > maxNameLength {
		return "", fmt.Errorf("%w: must be 1-%d characters", domain.ErrInvalidName, maxNameLength)
	}
	return s, nil
}

// optional trims s and maps blank to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
