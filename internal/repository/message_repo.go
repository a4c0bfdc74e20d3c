package repository

import (
	"errors"

	"user-messaging-backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message
func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListByReceiver returns the receiver's messages newest-first with the
// sender resolved
func (r *MessageRepository) ListByReceiver(receiverID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("receiver_id = ?", receiverID).
		Preload("Sender").
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// MarkRead flags a message as read and returns the fresh record
func (r *MessageRepository) MarkRead(id uint) (*models.Message, error) {
	res := r.db.Model(&models.Message{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrMessageNotFound
	}

	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// Delete removes a message by primary key
func (r *MessageRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
