package repository

import (
	"testing"
	"time"

	"github.com/authkit/authkit/internal/db"
	"github.com/authkit/authkit/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	// A second connection would open a second empty in-memory database
	conn.SetMaxOpenConns(1)

	err = db.RunMigrations(conn.DB, "sqlite")
	require.NoError(t, err)

	t.Cleanup(func() { conn.Close() })
	return conn
}

func newTestUser(t *testing.T, repo UserRepository, email string) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarealha",
		Role:         model.RoleUser,
		Photo:        model.DefaultPhoto,
		Bio:          model.DefaultBio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(user))
	return user
}
