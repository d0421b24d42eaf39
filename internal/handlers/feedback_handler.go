package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobvista/backend/internal/auth"
	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/services"
)

type FeedbackHandler struct {
	FeedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{FeedbackService: feedbackService}
}

// Add is POST /api/feedbacks/add.
func (h *FeedbackHandler) Add(c *gin.Context) {
	var req dtos.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, feedbackText and a rating between 1 and 5 are required"})
		return
	}

	feedback, err := h.FeedbackService.Add(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Feedback added successfully",
		"feedback": feedback,
	})
}

// Mine is GET /api/feedbacks/my-feedbacks; the user comes from the token.
func (h *FeedbackHandler) Mine(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	feedbacks, err := h.FeedbackService.ForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks})
}

// All is GET /api/feedbacks/all.
func (h *FeedbackHandler) All(c *gin.Context) {
	feedbacks, err := h.FeedbackService.All()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks})
}
