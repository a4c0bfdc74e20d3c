package service

import (
	"time"

	"user-messaging-backend/internal/models"
	"user-messaging-backend/internal/repository"
)

// Store interfaces consumed by the services. The repository types satisfy
// them; tests substitute in-memory fakes.

type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Create(user *models.User) error
	UpdateProfile(id uint, upd repository.ProfileUpdate) (*models.User, error)
	UpdatePassword(id uint, passwordHash string) error
	SetResetToken(id uint, token string, expires time.Time) error
	ConsumeResetToken(token, newPasswordHash string, now time.Time) (bool, error)
	ClearExpiredResetTokens(now time.Time) (int64, error)
	SetProfileImage(id uint, url string) (*models.User, error)
	ListAll() ([]models.User, error)
}

type RefreshTokenStore interface {
	Create(token *models.RefreshToken) error
	FindByValue(value string) (*models.RefreshToken, error)
	DeleteByValue(value string) error
	DeleteIfExpired(value string, now time.Time) error
	DeleteExpired(now time.Time) (int64, error)
}

type MessageStore interface {
	Create(message *models.Message) error
	ListByReceiver(receiverID uint) ([]models.Message, error)
	MarkRead(id uint) (*models.Message, error)
	Delete(id uint) error
}

type AuditStore interface {
	Record(userID *uint, action string, details string) error
}

// ResetMailer delivers password reset tokens. Delivery outcome never affects
// the reset flow.
type ResetMailer interface {
	SendPasswordReset(to, token string) error
}
