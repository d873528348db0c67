package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"

	// TypeAll is accepted by Filter and means the same as an empty Type.
	TypeAll Type = "all"
)

// Valid reports whether t is a type a transaction can carry.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseType parses a user supplied type. The empty string and "all" map to TypeAll.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeIncome, TypeExpense:
		return t, nil
	case "", TypeAll:
		return TypeAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Transaction is a single ledger record. It is never modified after creation.
type Transaction struct {
	ID       uuid.UUID       `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Type     Type            `json:"type"`
	Date     time.Time       `json:"date"`
}

// Validate checks a record read back from storage. It holds the same rules
// as NewParams plus a non-nil id.
func (t Transaction) Validate() error {
	if t.ID == uuid.Nil {
		return ErrMissingID
	}

	return NewParams{Amount: t.Amount, Category: t.Category, Type: t.Type}.Validate()
}

// NewParams is everything the caller supplies when recording a transaction.
// The ledger assigns ID and Date.
type NewParams struct {
	Amount   decimal.Decimal
	Category string
	Type     Type
}

// Validate rejects input that must never reach the ledger.
func (p NewParams) Validate() error {
	if p.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if strings.TrimSpace(p.Category) == "" {
		return ErrMissingCategory
	}

	if !p.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, p.Type)
	}

	return nil
}
