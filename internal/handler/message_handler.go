package handler

import (
	"errors"
	"net/http"
	"strconv"

	"user-messaging-backend/internal/service"
	"user-messaging-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type SendMessageRequest struct {
	Receiver uint   `json:"receiver" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// Send stores a new direct message from the authenticated user
func (h *MessageHandler) Send(c *gin.Context) {
	senderID := c.GetUint("userID")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Receiver and content are required")
		return
	}

	message, err := h.messages.Send(senderID, req.Receiver, req.Content)
	if err != nil {
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Message sent",
		"data":    message,
	})
}

// MyMessages lists the authenticated user's received messages
func (h *MessageHandler) MyMessages(c *gin.Context) {
	userID := c.GetUint("userID")

	messages, err := h.messages.Inbox(userID)
	if err != nil {
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"messages": messages})
}

// MarkRead flags a message as read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid message id")
		return
	}

	message, err := h.messages.MarkRead(id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Message marked as read",
		"data":    message,
	})
}

// Delete removes a message by id
func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "messageId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid message id")
		return
	}

	if err := h.messages.Delete(id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Message deleted successfully")
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
