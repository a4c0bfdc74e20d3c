package repository

import "errors"

// Sentinel errors surfaced by the repositories so services can map them to
// the right response without string matching.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrTokenNotFound   = errors.New("refresh token not found")
	ErrMessageNotFound = errors.New("message not found")
)
