package service

import (
	"testing"
	"time"

	"github.com/authkit/authkit/internal/db"
	"github.com/authkit/authkit/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type testEnv struct {
	auth   *AuthService
	users  *UserService
	repo   repository.UserRepository
	tokens repository.TokenRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	userRepo := repository.NewUserRepository(conn)
	tokenRepo := repository.NewTokenRepository(conn)
	emailService := NewEmailService("", "noreply@test.local", "", "http://localhost:3000", "AuthKit", true)

	return &testEnv{
		auth:   NewAuthService(userRepo, tokenRepo, emailService, "test-secret", false, 720*time.Hour, 24*time.Hour, time.Hour),
		users:  NewUserService(userRepo),
		repo:   userRepo,
		tokens: tokenRepo,
	}
}
