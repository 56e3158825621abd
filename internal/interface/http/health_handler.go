package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/backend/pkg/response"
)

// Healthcheck GET /api/v1/healthcheck
func Healthcheck(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "service healthy", nil)
}
