package validation

import (
	"net/mail"
)

// ValidateEmail validates email format and length using Go's RFC 5322 parser.
func ValidateEmail(email string) error {
	if email == "" {
		return newError("email address is required")
	}

	// RFC 5321: 254 characters is the practical upper bound for an address
	if len(email) > 254 {
		return newError("email address is too long (max 254 characters)")
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return newError("invalid email address format")
	}

	return nil
}
