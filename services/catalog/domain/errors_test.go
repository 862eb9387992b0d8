package domain

import (
	"errors"
	"testing"
)

func TestSentinelErrors_Distinct(t *testing.T) {
	all := []error{
		ErrClientNotFound, ErrServiceNotFound, ErrMaterialNotFound, ErrClientInUse,
		ErrInvalidName, ErrInvalidPrice, ErrInvalidEmail,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%q must not match %q", a, b)
			}
		}
	}
}
