package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether s has the local@domain.tld shape. Pure.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidAmount reports whether 0 < amount <= ceiling. Pure.
func IsValidAmount(amount, ceiling decimal.Decimal) bool {
	return amount.IsPositive() && amount.LessThanOrEqual(ceiling)
}

// SanitizeString strips characters with HTML/markup significance from
// free-text fields that are persisted or echoed back.
func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '&', '"', '\'':
			return -1
		}
		return r
	}, s)
}
