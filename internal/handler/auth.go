package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/authkit/authkit/internal/ctxkeys"
	"github.com/authkit/authkit/internal/repository"
	"github.com/authkit/authkit/internal/service"
	"github.com/authkit/authkit/internal/validation"
)

// asValidationError reports whether err stems from rejected user input,
// which maps to a 400 carrying the message. Anything else is internal and
// must not cross the boundary.
func asValidationError(err error) (*validation.Error, bool) {
	var validationErr *validation.Error
	ok := errors.As(err, &validationErr)
	return validationErr, ok
}

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		if validationErr, ok := asValidationError(err); ok {
			writeError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		slog.Error("registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.authService.SetSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, user.Public())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		slog.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.authService.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, user.Public())
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// LoginStatus reports whether the request carries a valid session cookie.
// It never rejects; absent or invalid cookies simply read as false.
func (h *authHandler) LoginStatus(w http.ResponseWriter, r *http.Request) {
	_, err := h.authService.SessionFromRequest(r)
	writeJSON(w, http.StatusOK, err == nil)
}

// RequestVerifyEmail issues a verification token for the logged-in user and
// emails the link.
func (h *authHandler) RequestVerifyEmail(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.authService.RequestEmailVerification(user)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyVerified) {
			writeError(w, http.StatusBadRequest, "Email already verified")
			return
		}
		slog.Error("failed to send verification email", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Error sending email")
		return
	}

	writeMessage(w, http.StatusOK, "Email sent successfully")
}

// VerifyUser consumes a verification token from an emailed link.
func (h *authHandler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Invalid verification token")
		return
	}

	err := h.authService.VerifyEmail(token)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyVerified) {
			writeError(w, http.StatusBadRequest, "User is already verified")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid or expired verification token")
		return
	}

	writeMessage(w, http.StatusOK, "User verified successfully")
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *authHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	err := decodeJSON(r, &req)
	if err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	err = h.authService.ForgotPassword(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if validationErr, ok := asValidationError(err); ok {
			writeError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		slog.Error("failed to send password reset email", "error", err)
		writeError(w, http.StatusInternalServerError, "Error sending email")
		return
	}

	writeMessage(w, http.StatusOK, "Email sent successfully")
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *authHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Invalid reset token")
		return
	}

	var req resetPasswordRequest
	err := decodeJSON(r, &req)
	if err != nil || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	err = h.authService.ResetPassword(token, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			writeError(w, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		if validationErr, ok := asValidationError(err); ok {
			writeError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		slog.Error("password reset failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeMessage(w, http.StatusOK, "Password reset successfully")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *authHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req changePasswordRequest
	err := decodeJSON(r, &req)
	if err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	err = h.authService.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid password")
			return
		}
		if validationErr, ok := asValidationError(err); ok {
			writeError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		slog.Error("password change failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeMessage(w, http.StatusOK, "Password changed successfully")
}
