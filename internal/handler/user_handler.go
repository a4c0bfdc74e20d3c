package handler

import (
	"errors"
	"net/http"

	"user-messaging-backend/internal/service"
	"user-messaging-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type UpdateProfileRequest struct {
	UserName string `json:"userName" binding:"omitempty,min=3"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty"`
}

type UploadProfileImageRequest struct {
	ProfileImage string `json:"profileImage" binding:"required,url"`
}

// Profile returns the authenticated user's record, password excluded
func (h *UserHandler) Profile(c *gin.Context) {
	userID := c.GetUint("userID")

	user, err := h.users.Profile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"user": user})
}

// UpdateProfile applies the submitted profile fields
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.UpdateProfile(userID, req.UserName, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Profile updated",
		"user":    user,
	})
}

// AllUsers returns every account; routed behind the admin gate
func (h *UserHandler) AllUsers(c *gin.Context) {
	users, err := h.users.ListUsers()
	if err != nil {
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"users": users})
}

// UploadProfileImage stores the submitted profile image URL
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	userID := c.GetUint("userID")

	var req UploadProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	user, err := h.users.SetProfileImage(userID, req.ProfileImage)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"message":      "Profile image uploaded",
		"profileImage": user.ProfileImage,
		"user":         user,
	})
}
