package validation

// ValidatePassword validates password length bounds
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return newError("password must be at least 6 characters")
	}

	// bcrypt silently truncates input beyond 72 bytes
	if len(password) > 72 {
		return newError("password must not exceed 72 characters")
	}

	return nil
}
