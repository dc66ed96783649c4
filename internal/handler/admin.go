package handler

import (
	"errors"
	"net/http"

	"github.com/authkit/authkit/internal/model"
	"github.com/authkit/authkit/internal/repository"
	"github.com/authkit/authkit/internal/service"
)

type adminHandler struct {
	userService *service.UserService
}

func NewAdminHandler(userService *service.UserService) *adminHandler {
	return &adminHandler{userService: userService}
}

func (h *adminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.userService.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *adminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	public := make([]model.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	writeJSON(w, http.StatusOK, public)
}
