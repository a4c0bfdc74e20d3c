package repository

import (
	"errors"
	"time"

	"user-messaging-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ProfileUpdate carries the mutable profile fields for UpdateProfile.
// Empty fields are left unchanged.
type ProfileUpdate struct {
	UserName string
	Email    string
	Phone    string
}

// FindByEmail finds a user by email (exact, case-sensitive as stored)
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user by primary key
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdateProfile applies the given profile fields and returns the fresh record
func (r *UserRepository) UpdateProfile(id uint, upd ProfileUpdate) (*models.User, error) {
	fields := map[string]interface{}{}
	if upd.UserName != "" {
		fields["user_name"] = upd.UserName
	}
	if upd.Email != "" {
		fields["email"] = upd.Email
	}
	if upd.Phone != "" {
		fields["phone"] = upd.Phone
	}

	if len(fields) > 0 {
		res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}
	return r.FindByID(id)
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(id uint, passwordHash string) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetResetToken opens a reset window on the user record
func (r *UserRepository) SetResetToken(id uint, token string, expires time.Time) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_password_token":   token,
			"reset_password_expires": expires,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken atomically sets the new password hash and clears the
// reset fields for the user whose stored token matches and has not expired.
// A single conditional UPDATE guarantees the token succeeds at most once,
// even under concurrent attempts. Returns false when no row matched (token
// invalid or expired, indistinguishable on purpose).
func (r *UserRepository) ConsumeResetToken(token, newPasswordHash string, now time.Time) (bool, error) {
	res := r.db.Model(&models.User{}).
		Where("reset_password_token = ? AND reset_password_expires > ?", token, now).
		Updates(map[string]interface{}{
			"password_hash":          newPasswordHash,
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ClearExpiredResetTokens wipes lapsed reset windows. The expiry comparison
// in ConsumeResetToken is what enforces correctness; this only tidies rows.
func (r *UserRepository) ClearExpiredResetTokens(now time.Time) (int64, error) {
	res := r.db.Model(&models.User{}).
		Where("reset_password_expires IS NOT NULL AND reset_password_expires <= ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	return res.RowsAffected, res.Error
}

// SetProfileImage stores the profile image URL and returns the fresh record
func (r *UserRepository) SetProfileImage(id uint, url string) (*models.User, error) {
	res := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("profile_image", url)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(id)
}

// ListAll returns every user record
func (r *UserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("id").Find(&users).Error
	return users, err
}
