package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/authkit/authkit/internal/model"
	"github.com/authkit/authkit/internal/repository"
	"github.com/authkit/authkit/internal/validation"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// ProfileUpdate carries the optional profile fields of a PATCH. Nil means
// "leave unchanged". The password is deliberately not part of a profile
// update; it only changes through AuthService.
type ProfileUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Bio   *string `json:"bio"`
	Photo *string `json:"photo"`
}

func (s *UserService) UpdateProfile(id string, update ProfileUpdate) (*model.User, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		err = validation.ValidateName(name)
		if err != nil {
			return nil, err
		}
		user.Name = name
	}

	if update.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*update.Email))
		err = validation.ValidateEmail(email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}

	if update.Bio != nil {
		user.Bio = *update.Bio
	}

	if update.Photo != nil {
		user.Photo = *update.Photo
	}

	err = s.userRepository.Update(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *UserService) Delete(id string) error {
	err := s.userRepository.Delete(id)
	if err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}

func (s *UserService) All() ([]model.User, error) {
	return s.userRepository.All()
}
