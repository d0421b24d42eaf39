package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/services"
)

type LearnHandler struct {
	LearnService *services.LearnService
}

func NewLearnHandler(learnService *services.LearnService) *LearnHandler {
	return &LearnHandler{LearnService: learnService}
}

// SaveLearningType is POST /api/learn/learning-type.
func (h *LearnHandler) SaveLearningType(c *gin.Context) {
	var req dtos.LearningTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UserId, learningType, and learningTypePoints are required."})
		return
	}

	learn, err := h.LearnService.SaveLearningType(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Learning type and points saved successfully.",
		"data":    learn,
	})
}

// UpdateLearningType is PUT /api/learn/update-learning-type.
func (h *LearnHandler) UpdateLearningType(c *gin.Context) {
	var req dtos.LearningTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UserId, learningType, and learningTypePoints are required."})
		return
	}

	learn, err := h.LearnService.UpdateLearningType(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Learning type and points updated successfully.",
		"data":    learn,
	})
}

// UpdateFilename is PUT /api/learn/update-filename/:userId. Each call
// opens a fresh quiz attempt for the chosen topic, capped per topic.
func (h *LearnHandler) UpdateFilename(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var req dtos.FilenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename is required and must be a string"})
		return
	}

	learn, err := h.LearnService.SetFilename(userID, req.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Filename updated and new quiz object added successfully",
		"learn":   learn,
	})
}

// FetchQuestions is PUT /api/learn/get-questions.
func (h *LearnHandler) FetchQuestions(c *gin.Context) {
	var req dtos.FetchQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UserId is required"})
		return
	}

	result, err := h.LearnService.FetchQuestions(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Questions updated successfully",
		"filename":     result.Filename,
		"learningType": result.LearningType,
		"questions":    result.Questions,
	})
}

// SubmitQuiz is PUT /api/learn/submit-quiz.
func (h *LearnHandler) SubmitQuiz(c *gin.Context) {
	var req dtos.QuizSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "All fields are required: userId, score, timeTaken, correctAnswers, totalQuestions, learningType",
		})
		return
	}

	attempt, err := h.LearnService.SubmitQuiz(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quiz results updated successfully in the most recent quiz attempt",
		"data": gin.H{
			"score":          attempt.Score,
			"correctAnswers": attempt.CorrectAnswers,
			"totalQuestions": attempt.TotalQuestions,
			"timeTaken":      attempt.TimeTaken,
		},
	})
}

// Results is GET /api/learn/get-quiz-results.
func (h *LearnHandler) Results(c *gin.Context) {
	results, err := h.LearnService.Results()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quiz results retrieved successfully",
		"results": results,
	})
}

// ResultsForUser is GET /api/learn/get-quiz-results/:id.
func (h *LearnHandler) ResultsForUser(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	learn, err := h.LearnService.ResultsForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User's quiz details retrieved successfully",
		"results": learn,
	})
}
