package utils

import "github.com/gin-gonic/gin"

// SuccessResponse sends a JSON payload with the given status. Callers include
// a "message" key where the endpoint defines one.
func SuccessResponse(c *gin.Context, statusCode int, payload gin.H) {
	c.JSON(statusCode, payload)
}

// MessageResponse sends a success response carrying only a message
func MessageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}
