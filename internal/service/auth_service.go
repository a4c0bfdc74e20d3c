package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"user-messaging-backend/internal/models"
	"user-messaging-backend/internal/repository"
	"user-messaging-backend/pkg/utils"
)

const (
	refreshTokenBytes = 40
	resetTokenBytes   = 32
)

// AuthConfig carries the token lifetimes the auth service works with
type AuthConfig struct {
	RefreshTokenExpiry time.Duration
	ResetTokenExpiry   time.Duration
}

type AuthService struct {
	users  UserStore
	tokens RefreshTokenStore
	audit  AuditStore
	jwt    *utils.JWTManager
	mailer ResetMailer
	cfg    AuthConfig
}

func NewAuthService(users UserStore, tokens RefreshTokenStore, audit AuditStore, jwt *utils.JWTManager, mailer ResetMailer, cfg AuthConfig) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		audit:  audit,
		jwt:    jwt,
		mailer: mailer,
		cfg:    cfg,
	}
}

// LoginResult carries the credential pair handed to clients on login
type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// Signup creates a new user account. The submitted password only ever
// reaches the record through SetPassword, so plaintext is never stored.
func (s *AuthService) Signup(userName, email, password, phone, role string) (*models.User, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		UserName: userName,
		Email:    email,
		Phone:    phone,
		Role:     role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userID := user.ID
	_ = s.audit.Record(&userID, "user_signup", fmt.Sprintf("User %s signed up", email))

	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair. The
// failure is identical for unknown email and wrong password.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwt.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshValue, err := utils.RandomHex(refreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Prior refresh tokens stay valid: each login opens its own session.
	record := &models.RefreshToken{
		Token:     refreshValue,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenExpiry),
	}
	if err := s.tokens.Create(record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	userID := user.ID
	_ = s.audit.Record(&userID, "user_login", fmt.Sprintf("User %s logged in", email))

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The claims
// come from the owner's current record, not from anything cached at issuance,
// and the refresh token itself is not rotated.
func (s *AuthService) Refresh(refreshValue string) (string, error) {
	record, err := s.tokens.FindByValue(refreshValue)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	if time.Now().After(record.ExpiresAt) {
		if err := s.tokens.DeleteIfExpired(refreshValue, time.Now()); err != nil {
			log.Printf("Failed to delete expired refresh token: %v", err)
		}
		return "", ErrRefreshTokenExpired
	}

	accessToken, err := s.jwt.Generate(record.User.ID, record.User.Email, record.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout deletes the presented refresh token. A token that is already gone
// is reported as such rather than silently succeeding.
func (s *AuthService) Logout(refreshValue string) error {
	if err := s.tokens.DeleteByValue(refreshValue); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return ErrRefreshTokenNotFound
		}
		return err
	}
	return nil
}

// ForgotPassword opens a time-boxed reset window on the account and hands the
// token to the mailer. The token is also returned to the caller, matching the
// endpoint's response contract. Unknown emails are reported as not found.
func (s *AuthService) ForgotPassword(email string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	token, err := utils.RandomHex(resetTokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(s.cfg.ResetTokenExpiry)
	if err := s.users.SetResetToken(user.ID, token, expires); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	// Fire-and-forget: the reset flow does not depend on delivery.
	if s.mailer != nil {
		go func(to, tok string) {
			if err := s.mailer.SendPasswordReset(to, tok); err != nil {
				log.Printf("Failed to send reset email to %s: %v", to, err)
			}
		}(user.Email, token)
	}

	userID := user.ID
	_ = s.audit.Record(&userID, "password_reset_requested", fmt.Sprintf("Reset token issued for %s", email))

	return token, nil
}

// ResetPassword consumes a reset token and installs the new password. The
// password change and the ticket clearing land in one store update, so the
// token succeeds at most once; invalid and expired are indistinguishable.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ok, err := s.users.ConsumeResetToken(token, hash, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrResetTokenInvalid
	}

	_ = s.audit.Record(nil, "password_reset", "Password reset via token")
	return nil
}

// ChangePassword replaces the password after verifying the old one
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongOldPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(user.ID, hash); err != nil {
		return err
	}

	_ = s.audit.Record(&user.ID, "password_changed", fmt.Sprintf("User %s changed password", user.Email))
	return nil
}

// ResolveExternalIdentity maps a provider-verified (email, displayName) pair
// to a local account, creating one on first login. Created accounts carry the
// OAuth sentinel instead of a password hash and can never log in directly.
func (s *AuthService) ResolveExternalIdentity(email, displayName string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	user = &models.User{
		UserName:     displayName,
		Email:        email,
		PasswordHash: models.OAuthPasswordSentinel,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userID := user.ID
	_ = s.audit.Record(&userID, "oauth_signup", fmt.Sprintf("User %s created via Google login", email))

	return user, nil
}

// IssueAccessToken signs an access token for the given user. Used by the
// OAuth callback, which hands out an access token only.
func (s *AuthService) IssueAccessToken(user *models.User) (string, error) {
	return s.jwt.Generate(user.ID, user.Email, user.Role)
}
