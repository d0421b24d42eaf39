package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/services"
)

type NotificationHandler struct {
	NotificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{NotificationService: notificationService}
}

// AcceptJob is POST /api/notification/accept-job.
func (h *NotificationHandler) AcceptJob(c *gin.Context) {
	var req dtos.AcceptJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobId and userId are required"})
		return
	}

	decision, err := h.NotificationService.AcceptJob(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

// UpdateStatus is PUT /api/notification/update-status.
func (h *NotificationHandler) UpdateStatus(c *gin.Context) {
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobId and userId are required"})
		return
	}

	decision, err := h.NotificationService.UpdateStatus(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

// ForUser is GET /api/notification/:userId.
func (h *NotificationHandler) ForUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	notifications, err := h.NotificationService.ForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
