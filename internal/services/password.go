package service

import (
	"strings"
	"unicode"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
)

const minPasswordLength = 8

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "qwerty123": {}, "qwertyuiop": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "11111111": {}, "iloveyou": {},
	"sunshine": {}, "princess": {}, "football": {}, "baseball": {}, "welcome1": {},
	"admin123": {}, "letmein1": {}, "abc12345": {}, "1q2w3e4r": {}, "zaq12wsx": {},
	"passw0rd": {}, "superman": {}, "trustno1": {}, "dragon123": {}, "monkey123": {},
}

// validatePassword applies the storefront password rules to password for the account email.
func validatePassword(field, password, email string) error {

	if len([]rune(password)) < minPasswordLength {
		return errors.AddValidationError(field, "must contain at least 8 characters")
	}

	if strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		return errors.AddValidationError(field, "must not consist of digits only")
	}

	lower := strings.ToLower(password)

	if _, ok := commonPasswords[lower]; ok {
		return errors.AddValidationError(field, "is too common")
	}

	if similarToEmail(lower, strings.ToLower(email)) {
		return errors.AddValidationError(field, "is too similar to the email")
	}

	return nil
}

// similarToEmail reports whether password contains, or is contained in, a word of the email local part.
func similarToEmail(password, email string) bool {

	local, _, _ := strings.Cut(email, "@")

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, part := range parts {
		if len(part) < 4 {
			continue
		}
		if strings.Contains(password, part) || strings.Contains(part, password) {
			return true
		}
	}

	return false
}
