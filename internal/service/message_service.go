package service

import (
	"errors"

	"user-messaging-backend/internal/models"
	"user-messaging-backend/internal/repository"
)

type MessageService struct {
	messages MessageStore
}

func NewMessageService(messages MessageStore) *MessageService {
	return &MessageService{messages: messages}
}

// Send stores a new direct message from the authenticated sender
func (s *MessageService) Send(senderID, receiverID uint, content string) (*models.Message, error) {
	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

// Inbox returns the user's received messages, newest first
func (s *MessageService) Inbox(userID uint) ([]models.Message, error) {
	return s.messages.ListByReceiver(userID)
}

// MarkRead flags a message as read
func (s *MessageService) MarkRead(messageID uint) (*models.Message, error) {
	message, err := s.messages.MarkRead(messageID)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// Delete removes a message
func (s *MessageService) Delete(messageID uint) error {
	if err := s.messages.Delete(messageID); err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	return nil
}
