package apperror

import "github.com/gin-gonic/gin"

// Fail writes the error envelope and stops the handler chain.
func Fail(c *gin.Context, err error) {
	c.AbortWithStatusJSON(Status(err), gin.H{
		"success": false,
		"message": ClientMessage(err),
	})
}
