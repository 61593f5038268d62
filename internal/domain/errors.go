package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrUnknownStatus        = errors.New("unknown status")
	ErrInvalidQuantity      = errors.New("quantity must not be negative")
)

var hundred = decimal.NewFromInt(100)

// ValidatePercentage checks that pct lies in [0, 100].
func ValidatePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return ErrPercentageOutOfRange
	}
	return nil
}

// IsInvalidInput reports whether err came from record validation rather than from storage.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrPercentageOutOfRange) ||
		errors.Is(err, ErrUnknownStatus) ||
		errors.Is(err, ErrInvalidQuantity)
}
