package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/services"
	"github.com/jobvista/backend/internal/storage"
)

type JobHandler struct {
	JobService *services.JobService
	Storage    *storage.Store
}

func NewJobHandler(jobService *services.JobService, store *storage.Store) *JobHandler {
	return &JobHandler{JobService: jobService, Storage: store}
}

// Create is POST /api/jobs/create (multipart with a logo file).
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "All fields are required: title, experienceYears, email, phoneNumber, description, requirements, userId",
		})
		return
	}

	logoFile, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo file is required"})
		return
	}

	logoURL, err := h.Storage.Save(logoFile, "logos", req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	job, matches, err := h.JobService.Create(c.Request.Context(), &req, logoURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Job created successfully, candidates notified",
		"job":               job,
		"matchedCandidates": matches,
	})
}

// Search is POST /api/jobs/search.
func (h *JobHandler) Search(c *gin.Context) {
	var req dtos.JobSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid job type and job count"})
		return
	}

	result, err := h.JobService.Search(c.Request.Context(), req.JobType, req.JobCount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// All is GET /api/jobs/all.
func (h *JobHandler) All(c *gin.Context) {
	jobs, err := h.JobService.All()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// ByID is GET /api/jobs/:id.
func (h *JobHandler) ByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.JobService.ByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Update is PUT /api/jobs/:id.
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job updated successfully",
		"job":     job,
	})
}

// Delete is DELETE /api/jobs/:job_id.
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "job_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.JobService.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job deleted successfully from both database and external API",
		"job":     job,
	})
}

// ByCreator is GET /api/jobs/user/:userId.
func (h *JobHandler) ByCreator(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	jobs, err := h.JobService.ByCreator(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// UpdateUserStatus is PUT /api/jobs/update-user-status/:jobId.
func (h *JobHandler) UpdateUserStatus(c *gin.Context) {
	jobID, ok := parseID(c, "jobId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dtos.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	job, err := h.JobService.SetUserStatus(jobID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User status updated successfully",
		"job":     job,
	})
}
