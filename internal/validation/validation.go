package validation

// Error marks a user-input validation failure. Handlers match on it with
// errors.As to map bad input to a 400 instead of a server error.
type Error struct {
	message string
}

func (e *Error) Error() string {
	return e.message
}

func newError(message string) *Error {
	return &Error{message: message}
}
