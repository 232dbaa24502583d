package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes the flat error shape the frontend consumes: {"error": "..."}.
func Error(c *gin.Context, status int, msg string) {
	if msg == "" {
		msg = "unknown error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
