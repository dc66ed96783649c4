package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/authkit/authkit/internal/ctxkeys"
	"github.com/authkit/authkit/internal/model"
	"github.com/authkit/authkit/internal/service"
)

func reject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// Authenticate resolves the session cookie into a user and attaches it to the
// request context. A missing cookie, an invalid or expired token, and a token
// whose subject no longer exists are all rejected the same way: 401.
func Authenticate(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := authService.SessionFromRequest(r)
			if err != nil {
				// an invalid or expired token is dead weight; drop it so the
				// client stops presenting it
				if !errors.Is(err, http.ErrNoCookie) {
					authService.ClearSessionCookie(w)
				}
				reject(w, http.StatusUnauthorized, "Not authorized, please login")
				return
			}

			user, err := userService.ByID(userID)
			if err != nil {
				authService.ClearSessionCookie(w)
				reject(w, http.StatusUnauthorized, "Not authorized, please login")
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a handler on the authenticated user's role. It must run
// behind Authenticate; a request that reaches it without a resolved identity
// is rejected outright.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	allowed := make(map[model.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := ctxkeys.User(r.Context())
			if user == nil {
				reject(w, http.StatusUnauthorized, "Not authorized, please login")
				return
			}

			if !allowed[user.Role] {
				reject(w, http.StatusForbidden, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
