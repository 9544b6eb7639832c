package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingCategory   = errors.New("category is required")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrMissingAmount     = errors.New("amount is required")
	ErrInvalidAmount     = errors.New("amount is not a number")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// ValidationError describes rejected user input.
type ValidationError struct {
	Field string // "category" or "amount"
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a user-input rejection rather than a
// system fault.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Amounts outside these bounds are rejected; adding values whose exponents
// differ by millions of digits does not finish in practice.
const (
	maxAmountExponent = 28
	maxAmountDigits   = 38
)

// ParseAmount parses a decimal amount typed by the user. Surrounding
// whitespace is ignored. NaN and infinities never parse.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Err: ErrMissingAmount}
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Value: text, Err: ErrInvalidAmount}
	}
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent ||
		amount.NumDigits() > maxAmountDigits {
		return decimal.Zero, &ValidationError{Field: "amount", Value: text, Err: ErrInvalidAmount}
	}
	return amount, nil
}
