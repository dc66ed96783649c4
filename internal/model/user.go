package model

import (
	"time"
)

// Role is the authorization level of a user account.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleCreator:
		return true
	}
	return false
}

const (
	DefaultPhoto = "https://robohash.org/mail@ashallendesign.co.uk"
	DefaultBio   = "I am a new user"
)

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	Photo        string    `db:"photo"`
	Bio          string    `db:"bio"`
	IsVerified   bool      `db:"is_verified"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// PublicUser is the client-facing view of a user. It never carries the
// password hash.
type PublicUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Photo      string `json:"photo"`
	Bio        string `json:"bio"`
	IsVerified bool   `json:"isVerified"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Photo:      u.Photo,
		Bio:        u.Bio,
		IsVerified: u.IsVerified,
	}
}
