package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/authkit/authkit/internal/ctxkeys"
	"github.com/authkit/authkit/internal/repository"
	"github.com/authkit/authkit/internal/service"
)

type userHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *userHandler {
	return &userHandler{userService: userService}
}

func (h *userHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	writeJSON(w, http.StatusOK, user.Public())
}

func (h *userHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var update service.ProfileUpdate
	err := decodeJSON(r, &update)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.userService.UpdateProfile(user.ID, update)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		if validationErr, ok := asValidationError(err); ok {
			writeError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		slog.Error("profile update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, updated.Public())
}
