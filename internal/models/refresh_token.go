package models

import "time"

// RefreshToken represents the refresh_tokens table. The opaque token value is
// stored as issued and looked up directly; it is never rotated on renewal and
// remains valid until its expiry or an explicit logout. A user may hold
// several live tokens at once (one per login).
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null;size:128" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
