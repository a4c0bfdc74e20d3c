package models

import (
	"time"

	"user-messaging-backend/pkg/utils"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// OAuthPasswordSentinel marks accounts created through the external identity
// bridge. It is deliberately not a bcrypt hash, so CheckPassword can never
// succeed against it: these accounts only authenticate via OAuth.
const OAuthPasswordSentinel = "!oauth-account"

// User represents the users table
type User struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	UserName             string     `gorm:"not null;size:100" json:"userName"`
	Email                string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash         string     `gorm:"not null;size:255" json:"-"`
	Phone                string     `gorm:"size:30" json:"phone,omitempty"`
	Role                 string     `gorm:"type:enum('admin','user');default:'user'" json:"role"`
	ProfileImage         string     `gorm:"size:512" json:"profileImage,omitempty"`
	ResetPasswordToken   *string    `gorm:"size:128;index" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// SetPassword hashes the plain text password and stores the hash. This is the
// only way a password reaches the record; no raw hash setter exists.
func (u *User) SetPassword(plain string) error {
	hash, err := utils.HashPassword(plain)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether the plain text password matches the stored
// hash. Always false for OAuth sentinel accounts.
func (u *User) CheckPassword(plain string) bool {
	return utils.ComparePassword(u.PasswordHash, plain)
}
