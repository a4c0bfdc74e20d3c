package handler

import (
	"errors"
	"log"
	"net/http"

	"user-messaging-backend/internal/service"
	"user-messaging-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type SignupRequest struct {
	UserName string `json:"userName" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// Signup handles user registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Signup(req.UserName, req.Email, req.Password, req.Phone, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "User created",
		"user": gin.H{
			"id":       user.ID,
			"userName": user.UserName,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// Login authenticates a user and returns an access/refresh token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"message":      "Login success",
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Refresh token required")
		return
	}

	accessToken, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken),
			errors.Is(err, service.ErrRefreshTokenExpired):
			utils.ErrorResponse(c, http.StatusForbidden, err.Error())
		default:
			internalError(c, err)
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logout deletes the presented refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Refresh token required")
		return
	}

	if err := h.auth.Logout(req.RefreshToken); err != nil {
		if errors.Is(err, service.ErrRefreshTokenNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Logout successful")
}

// ForgotPassword issues a password reset token
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.auth.ForgotPassword(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"message":    "Reset token generated",
		"resetToken": token,
	})
}

// ResetPassword consumes a reset token from the URL and sets a new password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.auth.ResetPassword(token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Password reset")
}

// ChangePassword replaces the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := c.GetUint("userID")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Provide old & new password")
		return
	}

	if err := h.auth.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongOldPassword):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		default:
			internalError(c, err)
		}
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Password changed")
}

// internalError logs the detail and returns an opaque 500 envelope
func internalError(c *gin.Context, err error) {
	log.Printf("request %s failed: %v", c.GetString("requestID"), err)
	utils.ErrorResponse(c, http.StatusInternalServerError, "Something went wrong")
}
