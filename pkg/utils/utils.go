package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errEmptyAmount    = errors.New("amount is empty")
	errNegativeAmount = errors.New("amount is negative")
)

// ParseAmount parses a raw text-field value into a non-negative decimal.
// Whitespace is trimmed; empty and negative values are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, errEmptyAmount
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, errNegativeAmount
	}
	return amount, nil
}

// MonthOf formats a point in time as a "YYYY-MM" payment cycle string.
func MonthOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// CurrentMonth returns the payment cycle string for the current wall-clock time.
func CurrentMonth() string {
	return MonthOf(time.Now())
}

// IsBlank reports whether a raw text-field value is empty or whitespace-only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
