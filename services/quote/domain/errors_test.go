package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Distinct(t *testing.T) {
	all := []error{
		ErrBudgetNotFound, ErrMaterialListNotFound, ErrItemNotFound, ErrClientNotFound,
		ErrServiceNotFound, ErrMaterialNotFound, ErrNotEditable, ErrInvalidName,
		ErrInvalidQuantity, ErrInvalidPrice, ErrUnitPriceRequired, ErrInvalidDiscount, ErrInvalidStatus,
		ErrInvalidAccessLink, ErrBudgetInUse,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%q must not match %q", a, b)
			}
		}
	}
}

func TestErrNotEditable_Message(t *testing.T) {
	if ErrNotEditable.Error() != "only PENDING budgets/material lists may be edited" {
		t.Fatalf("unexpected message: %q", ErrNotEditable.Error())
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("%w: discount must not be negative", ErrInvalidDiscount)
	if !errors.Is(wrapped, ErrInvalidDiscount) {
		t.Fatal("errors.Is must match wrapped ErrInvalidDiscount")
	}
}
