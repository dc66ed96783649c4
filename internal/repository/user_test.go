package repository

import (
	"testing"

	"github.com/authkit/authkit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	first := newTestUser(t, repo, "a@x.com")

	second := *first
	second.ID = "different-id"
	err := repo.Create(&second)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// first registration is untouched
	got, err := repo.ByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestUserRepository_ByEmailNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.ByEmail("nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := newTestUser(t, repo, "a@x.com")

	user.Name = "Renamed"
	user.Bio = "Updated bio"
	user.IsVerified = true
	require.NoError(t, repo.Update(user))

	got, err := repo.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "Updated bio", got.Bio)
	assert.True(t, got.IsVerified)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := newTestUser(t, repo, "a@x.com")

	require.NoError(t, repo.Delete(user.ID))

	_, err := repo.ByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = repo.Delete(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_All(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	newTestUser(t, repo, "a@x.com")
	newTestUser(t, repo, "b@x.com")

	users, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepository_RoleRoundTrip(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := newTestUser(t, repo, "admin@x.com")
	user.Role = model.RoleAdmin
	require.NoError(t, repo.Update(user))

	got, err := repo.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.True(t, got.Role.IsValid())
}
