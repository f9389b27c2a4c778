package handlers

import (
	"github.com/gin-gonic/gin"
)

// errorJSON writes the shared error shape {error, details?}.
func errorJSON(c *gin.Context, status int, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}
