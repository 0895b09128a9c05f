package validation

import (
	"fmt"
	"strings"
	"unicode"

	"aurum/internal/errors"
)

// Password length bounds.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 24
)

// AllowedSymbols is the symbol set a password must draw at least one
// character from. ForbiddenSymbols are rejected outright to keep
// injection-adjacent characters out of credentials.
const (
	AllowedSymbols   = "!#$%&()*+,-.:;=?[]^_`{|}~"
	ForbiddenSymbols = "@\"'<>\\"
)

// ValidatePassword checks the password policy and reports the first
// violated rule, in order: length, digit, uppercase, lowercase, symbol,
// forbidden character.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return errors.PolicyViolation(fmt.Sprintf(
			"Password length must be between %d and %d characters",
			MinPasswordLength, MaxPasswordLength,
		))
	}

	if !containsFunc(password, unicode.IsDigit) {
		return errors.PolicyViolation("Password must contain at least one digit")
	}

	if !containsFunc(password, unicode.IsUpper) {
		return errors.PolicyViolation("Password must contain at least one uppercase letter")
	}

	if !containsFunc(password, unicode.IsLower) {
		return errors.PolicyViolation("Password must contain at least one lowercase letter")
	}

	if !strings.ContainsAny(password, AllowedSymbols) {
		return errors.PolicyViolation(
			"Password must contain at least one symbol: '" + AllowedSymbols + "'",
		)
	}

	if strings.ContainsAny(password, ForbiddenSymbols) {
		return errors.PolicyViolation(
			"Password cannot contain this symbols: '" + ForbiddenSymbols + "'",
		)
	}

	return nil
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}
