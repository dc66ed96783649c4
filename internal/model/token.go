package model

import (
	"time"
)

// TokenPurpose discriminates what an action token authorizes. A token issued
// for one purpose never satisfies a lookup for another.
type TokenPurpose string

const (
	PurposeEmailVerify   TokenPurpose = "email_verify"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// ActionToken is a single-use, time-bound token backing email verification
// and password reset links. Only the SHA-256 of the plaintext is stored; the
// plaintext leaves the process exactly once, inside the emailed link.
type ActionToken struct {
	ID        string       `db:"id"`
	UserID    string       `db:"user_id"`
	Purpose   TokenPurpose `db:"purpose"`
	TokenHash string       `db:"token_hash"`
	ExpiresAt time.Time    `db:"expires_at"`
	CreatedAt time.Time    `db:"created_at"`
}
