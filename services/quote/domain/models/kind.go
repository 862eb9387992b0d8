package models

import "github.com/ghuser/voltdesk/services/quote/domain"

// Kind distinguishes the two aggregate variants, which share all totals and
// lifecycle rules.
type Kind string

const (
	KindBudget       Kind = "budget"
	KindMaterialList Kind = "material_list"
)

// ErrNotFound returns the kind-specific not-found sentinel.
func (k Kind) ErrNotFound() error {
	if k == KindMaterialList {
		return domain.ErrMaterialListNotFound
	}
	return domain.ErrBudgetNotFound
}

// HasDiscount reports whether the kind carries discount and validity fields.
func (k Kind) HasDiscount() bool {
	return k == KindBudget
}

func (k Kind) String() string { return string(k) }
