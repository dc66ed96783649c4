package routes

import (
	"net/http"

	"github.com/authkit/authkit/internal/app"
	"github.com/authkit/authkit/internal/handler"
	"github.com/authkit/authkit/internal/middleware"
	"github.com/authkit/authkit/internal/model"
)

func SetupRoutes(app *app.App) http.Handler {
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.UserService)
	admin := handler.NewAdminHandler(app.UserService)

	authenticate := middleware.Authenticate(app.AuthService, app.UserService)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	creatorOrAdmin := middleware.RequireRole(model.RoleAdmin, model.RoleCreator)
	rateLimit := middleware.RateLimitAuth()

	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate(h)
	}

	mux := http.NewServeMux()

	// Credential endpoints (rate limited)
	mux.Handle("POST /api/v1/register", rateLimit(http.HandlerFunc(auth.Register)))
	mux.Handle("POST /api/v1/login", rateLimit(http.HandlerFunc(auth.Login)))
	mux.HandleFunc("POST /api/v1/logout", auth.Logout)
	mux.HandleFunc("GET /api/v1/login-status", auth.LoginStatus)

	// Current user
	mux.Handle("GET /api/v1/user", protected(user.Get))
	mux.Handle("PATCH /api/v1/user", protected(user.Update))
	mux.Handle("PATCH /api/v1/change-password", protected(auth.ChangePassword))

	// Email verification
	mux.Handle("POST /api/v1/verify-email", protected(auth.RequestVerifyEmail))
	mux.HandleFunc("POST /api/v1/verify-user/{token}", auth.VerifyUser)

	// Password reset
	mux.Handle("POST /api/v1/forgot-password", rateLimit(http.HandlerFunc(auth.ForgotPassword)))
	mux.HandleFunc("POST /api/v1/reset-password/{token}", auth.ResetPassword)

	// Admin
	mux.Handle("DELETE /api/v1/admin/users/{id}", authenticate(adminOnly(http.HandlerFunc(admin.DeleteUser))))
	mux.Handle("GET /api/v1/admin/users", authenticate(creatorOrAdmin(http.HandlerFunc(admin.ListUsers))))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.ClientURL),
	)
}
