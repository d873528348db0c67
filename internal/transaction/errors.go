package transaction

import "errors"

var (
	ErrInvalidAmount   = errors.New("amount must not be negative")
	ErrMissingCategory = errors.New("category is required")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrMissingID       = errors.New("transaction id is required")
)

// IsValidation reports whether err was caused by rejected user input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrMissingCategory) ||
		errors.Is(err, ErrInvalidType)
}
