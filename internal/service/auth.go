package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/authkit/authkit/internal/model"
	"github.com/authkit/authkit/internal/repository"
	"github.com/authkit/authkit/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const sessionCookieName = "token"

type AuthService struct {
	userRepository      repository.UserRepository
	tokenRepository     repository.TokenRepository
	emailService        *EmailService
	jwtSecret           string
	isProduction        bool
	jwtExpiry           time.Duration
	emailVerifyExpiry   time.Duration
	passwordResetExpiry time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	tokenRepository repository.TokenRepository,
	emailService *EmailService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
	emailVerifyExpiry time.Duration,
	passwordResetExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:      userRepository,
		tokenRepository:     tokenRepository,
		emailService:        emailService,
		jwtSecret:           jwtSecret,
		isProduction:        isProduction,
		jwtExpiry:           jwtExpiry,
		emailVerifyExpiry:   emailVerifyExpiry,
		passwordResetExpiry: passwordResetExpiry,
	}
}

func (s *AuthService) Register(name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateName(name)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
		Photo:        model.DefaultPhoto,
		Bio:          model.DefaultBio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// collapse into the same error so callers cannot probe which accounts exist.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyJWT returns the subject user ID of a valid session token.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid token subject")
	}

	return userID, nil
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		MaxAge:   int(s.jwtExpiry.Seconds()),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) SessionFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", err
	}
	return s.VerifyJWT(cookie.Value)
}

// hashActionToken stores only a digest of the plaintext, so a leaked token
// table cannot be replayed against the consume endpoints.
func hashActionToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// IssueActionToken mints a single-use token for the given purpose. Any prior
// live token for the same user and purpose is invalidated first. The returned
// plaintext is handed to the email link and never persisted.
func (s *AuthService) IssueActionToken(user *model.User, purpose model.TokenPurpose, ttl time.Duration) (string, error) {
	err := s.tokenRepository.DeleteByUserAndPurpose(user.ID, purpose)
	if err != nil {
		return "", fmt.Errorf("failed to delete old tokens: %w", err)
	}

	bytes := make([]byte, 64)
	_, err = rand.Read(bytes)
	if err != nil {
		return "", err
	}
	plaintext := hex.EncodeToString(bytes) + user.ID

	token := &model.ActionToken{
		UserID:    user.ID,
		Purpose:   purpose,
		TokenHash: hashActionToken(plaintext),
		ExpiresAt: time.Now().Add(ttl),
	}
	err = s.tokenRepository.Create(token)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	return plaintext, nil
}

// ConsumeActionToken resolves and deletes the token in one step. A token is
// good for exactly one consumption, only before expiry, and only for the
// purpose it was issued under.
func (s *AuthService) ConsumeActionToken(plaintext string, purpose model.TokenPurpose) (*model.User, error) {
	token, err := s.tokenRepository.Consume(hashActionToken(plaintext), purpose)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepository.ByID(token.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return user, nil
}

// RequestEmailVerification issues a verification token and emails the link.
func (s *AuthService) RequestEmailVerification(user *model.User) error {
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	plaintext, err := s.IssueActionToken(user, model.PurposeEmailVerify, s.emailVerifyExpiry)
	if err != nil {
		return err
	}

	err = s.emailService.SendVerificationEmail(user.Email, plaintext, user.Name)
	if err != nil {
		slog.Error("failed to send verification email", "error", err, "email", user.Email)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("verification email sent", "user_id", user.ID, "email", user.Email)
	return nil
}

// VerifyEmail consumes a verification token and marks the owner verified.
func (s *AuthService) VerifyEmail(plaintext string) error {
	user, err := s.ConsumeActionToken(plaintext, model.PurposeEmailVerify)
	if err != nil {
		return ErrInvalidToken
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	user.IsVerified = true
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("email verified", "user_id", user.ID)
	return nil
}

// ForgotPassword issues a reset token and emails the link. Unknown emails
// surface repository.ErrUserNotFound to the handler.
func (s *AuthService) ForgotPassword(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return err
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		return err
	}

	plaintext, err := s.IssueActionToken(user, model.PurposePasswordReset, s.passwordResetExpiry)
	if err != nil {
		return err
	}

	err = s.emailService.SendPasswordResetEmail(user.Email, plaintext, user.Name)
	if err != nil {
		slog.Error("failed to send password reset email", "error", err, "email", user.Email)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("password reset email sent", "user_id", user.ID, "email", user.Email)
	return nil
}

// ResetPassword consumes a reset token and replaces the owner's password.
func (s *AuthService) ResetPassword(plaintext, newPassword string) error {
	err := validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	user, err := s.ConsumeActionToken(plaintext, model.PurposePasswordReset)
	if err != nil {
		return ErrInvalidToken
	}

	return s.setPassword(user, newPassword)
}

// ChangePassword replaces the password of a logged-in user after checking
// the current one.
func (s *AuthService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(currentPassword, user.PasswordHash)
	if err != nil {
		return ErrInvalidCredentials
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	return s.setPassword(user, newPassword)
}

// setPassword is the single write path for a changed secret. Hashing happens
// here and nowhere else, so profile updates never rehash.
func (s *AuthService) setPassword(user *model.User, newPassword string) error {
	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	slog.Info("password updated", "user_id", user.ID)
	return nil
}
