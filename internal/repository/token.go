package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/authkit/authkit/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	Create(token *model.ActionToken) error
	Consume(tokenHash string, purpose model.TokenPurpose) (*model.ActionToken, error)
	DeleteByUserAndPurpose(userID string, purpose model.TokenPurpose) error
}

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *model.ActionToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO action_tokens (id, user_id, purpose, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query,
		token.ID,
		token.UserID,
		token.Purpose,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)
	return err
}

// Consume deletes and returns the live token matching the hash and purpose.
// The DELETE ... RETURNING is a single statement, so concurrent requests
// presenting the same token race on the row: exactly one wins, the rest get
// ErrTokenNotFound. Expired tokens are indistinguishable from absent ones.
func (r *tokenRepository) Consume(tokenHash string, purpose model.TokenPurpose) (*model.ActionToken, error) {
	var t model.ActionToken
	now := time.Now()

	query := `
		DELETE FROM action_tokens
		WHERE token_hash = $1
		AND purpose = $2
		AND expires_at > $3
		RETURNING *
	`

	err := r.db.Get(&t, query, tokenHash, purpose, now)
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// DeleteByUserAndPurpose clears any live token before a new one is issued,
// keeping at most one token per user per purpose.
func (r *tokenRepository) DeleteByUserAndPurpose(userID string, purpose model.TokenPurpose) error {
	query := `DELETE FROM action_tokens WHERE user_id = $1 AND purpose = $2`
	_, err := r.db.Exec(query, userID, purpose)
	return err
}
