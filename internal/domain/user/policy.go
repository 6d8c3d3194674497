package user

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLen  = 8
	passwordSymbols = "!@#$%^&*"
)

var emailShapeRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmailShape accepts local@domain.tld addresses.
func ValidateEmailShape(value string) error {
	if !emailShapeRe.MatchString(value) {
		return NewValidationError(MsgInvalidEmail)
	}

	return nil
}

// ValidatePasswordPolicy requires 8+ characters with at least one lowercase
// letter, uppercase letter, digit and symbol from !@#$%^&*.
func ValidatePasswordPolicy(value string) error {
	var lower, upper, digit, symbol bool
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	if utf8.RuneCountInString(value) < minPasswordLen || !lower || !upper || !digit || !symbol {
		return NewValidationError(MsgPasswordRules)
	}

	return nil
}
