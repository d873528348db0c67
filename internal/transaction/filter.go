package transaction

import "github.com/shopspring/decimal"

// Filter narrows which transactions a read returns. The zero value matches everything.
type Filter struct {
	Type      Type             `json:"type,omitempty"`
	Category  string           `json:"category,omitempty"`
	MinAmount *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"`
}

// Matches reports whether tx satisfies every restriction set on f.
// Bounds are inclusive; an empty Type and TypeAll both leave the type unrestricted.
func (f Filter) Matches(tx Transaction) bool {
	if f.Type != "" && f.Type != TypeAll && tx.Type != f.Type {
		return false
	}

	if f.Category != "" && tx.Category != f.Category {
		return false
	}

	if f.MinAmount != nil && tx.Amount.LessThan(*f.MinAmount) {
		return false
	}

	if f.MaxAmount != nil && tx.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}

	return true
}

// IsZero reports whether f places no restriction at all.
func (f Filter) IsZero() bool {
	return (f.Type == "" || f.Type == TypeAll) &&
		f.Category == "" &&
		f.MinAmount == nil &&
		f.MaxAmount == nil
}
