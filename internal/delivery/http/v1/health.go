package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleRoot describes the API for unauthenticated callers.
func HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"info": "API for task management",
		"urls": gin.H{
			"/api/v1": "REST API",
			"/healthz": "Status check",
		},
	})
}

// HandleHealthz is the liveness probe target.
func HandleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
