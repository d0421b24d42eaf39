package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/jobvista/backend/internal/services"
)

// respondError maps service errors to their HTTP status; anything
// without a status becomes a 500 so internals never leak as contract.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		c.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	log.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// parseID reads a numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
