package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func respondJSON(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, gin.H{"data": data, "message": message})
}
