package repository

import (
	"testing"
	"time"

	"github.com/authkit/authkit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToken(t *testing.T, repo TokenRepository, userID string, purpose model.TokenPurpose, hash string, ttl time.Duration) *model.ActionToken {
	t.Helper()

	token := &model.ActionToken{
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(ttl),
	}
	require.NoError(t, repo.Create(token))
	return token
}

func TestTokenRepository_ConsumeRoundTrip(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	tokens := NewTokenRepository(conn)
	user := newTestUser(t, users, "a@x.com")

	newTestToken(t, tokens, user.ID, model.PurposeEmailVerify, "hash-1", time.Hour)

	got, err := tokens.Consume("hash-1", model.PurposeEmailVerify)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
}

func TestTokenRepository_ConsumeIsSingleUse(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	tokens := NewTokenRepository(conn)
	user := newTestUser(t, users, "a@x.com")

	newTestToken(t, tokens, user.ID, model.PurposeEmailVerify, "hash-1", time.Hour)

	_, err := tokens.Consume("hash-1", model.PurposeEmailVerify)
	require.NoError(t, err)

	_, err = tokens.Consume("hash-1", model.PurposeEmailVerify)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRepository_ConsumeRejectsWrongPurpose(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	tokens := NewTokenRepository(conn)
	user := newTestUser(t, users, "a@x.com")

	newTestToken(t, tokens, user.ID, model.PurposeEmailVerify, "hash-1", time.Hour)

	// a verification token must not satisfy a reset lookup
	_, err := tokens.Consume("hash-1", model.PurposePasswordReset)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// the token is still live for its own purpose
	_, err = tokens.Consume("hash-1", model.PurposeEmailVerify)
	assert.NoError(t, err)
}

func TestTokenRepository_ConsumeRejectsExpired(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	tokens := NewTokenRepository(conn)
	user := newTestUser(t, users, "a@x.com")

	newTestToken(t, tokens, user.ID, model.PurposePasswordReset, "hash-1", -time.Minute)

	_, err := tokens.Consume("hash-1", model.PurposePasswordReset)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRepository_DeleteByUserAndPurpose(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	tokens := NewTokenRepository(conn)
	user := newTestUser(t, users, "a@x.com")

	newTestToken(t, tokens, user.ID, model.PurposeEmailVerify, "hash-verify", time.Hour)
	newTestToken(t, tokens, user.ID, model.PurposePasswordReset, "hash-reset", time.Hour)

	require.NoError(t, tokens.DeleteByUserAndPurpose(user.ID, model.PurposeEmailVerify))

	_, err := tokens.Consume("hash-verify", model.PurposeEmailVerify)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// the other purpose's token survives
	_, err = tokens.Consume("hash-reset", model.PurposePasswordReset)
	assert.NoError(t, err)
}
