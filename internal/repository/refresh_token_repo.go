package repository

import (
	"errors"
	"time"

	"user-messaging-backend/internal/models"

	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepo(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create inserts a new refresh token record. Existing tokens for the same
// user are untouched: concurrent sessions each keep their own token.
func (r *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindByValue finds a refresh token by its opaque value with the owning user
// resolved. The user row is read fresh, so renewals always see the current
// role even if it changed after the token was issued.
func (r *RefreshTokenRepository) FindByValue(value string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.Where("token = ?", value).
		Preload("User").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// DeleteByValue removes a refresh token. Reports ErrTokenNotFound when the
// value does not exist, so logout can distinguish "already gone".
func (r *RefreshTokenRepository) DeleteByValue(value string) error {
	res := r.db.Where("token = ?", value).Delete(&models.RefreshToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// DeleteIfExpired removes the token only if it is past its expiry. The
// condition rides in the DELETE itself so two concurrent renewal attempts
// cannot both observe-then-delete.
func (r *RefreshTokenRepository) DeleteIfExpired(value string, now time.Time) error {
	return r.db.Where("token = ? AND expires_at <= ?", value, now).
		Delete(&models.RefreshToken{}).Error
}

// DeleteExpired purges every lapsed token. Renewal rejects expired tokens on
// its own; this only keeps the table from growing without bound.
func (r *RefreshTokenRepository) DeleteExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at <= ?", now).Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
