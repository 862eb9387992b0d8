// Package services contains stateless domain services for the account
// bounded context.
package services

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// ValidatePassword enforces the password policy:
//   - 8 to 72 bytes
//   - at least one letter and one digit
//   - no leading or trailing whitespace
func ValidatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(pw) > maxPasswordBytes {
		return fmt.Errorf("password must not exceed %d bytes", maxPasswordBytes)
	}
	r, _ := utf8.DecodeRuneInString(pw)
	last, _ := utf8.DecodeLastRuneInString(pw)
	if unicode.IsSpace(r) || unicode.IsSpace(last) {
		return errors.New("password must not start or end with whitespace")
	}
	var letter, digit bool
	for _, c := range pw {
		switch {
		case unicode.IsLetter(c):
			letter = true
		case unicode.IsDigit(c):
			digit = true
		}
	}
	if !letter || !digit {
		return errors.New("password must contain a letter and a digit")
	}
	return nil
}
