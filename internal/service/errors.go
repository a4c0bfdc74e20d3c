package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// login failures never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	ErrEmailExists          = errors.New("Email exists")
	ErrUserNotFound         = errors.New("User not found")
	ErrInvalidRefreshToken  = errors.New("Invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("Refresh token expired")
	ErrRefreshTokenNotFound = errors.New("Refresh token not found")
	ErrResetTokenInvalid    = errors.New("Token invalid/expired")
	ErrWrongOldPassword     = errors.New("Old password wrong")
	ErrMessageNotFound      = errors.New("Message not found")
)
