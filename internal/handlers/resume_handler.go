package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobvista/backend/internal/auth"
	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/services"
	"github.com/jobvista/backend/internal/storage"
)

type ResumeHandler struct {
	ResumeService *services.ResumeService
	Storage       *storage.Store
}

func NewResumeHandler(resumeService *services.ResumeService, store *storage.Store) *ResumeHandler {
	return &ResumeHandler{ResumeService: resumeService, Storage: store}
}

// CreateFromPDF is POST /api/resumes/create-resume-pdf. The user comes
// from the bearer token; the resume file rides in as multipart "file".
func (h *ResumeHandler) CreateFromPDF(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		// Fall back to a plain summary when no file was attached.
		summary := c.PostForm("resumeSummary")
		if summary == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No resume file or summary provided"})
			return
		}
		resume, err := h.ResumeService.CreateFromText(c.Request.Context(), userID, summary, nil)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Resume created successfully", "resume": resume})
		return
	}

	cvLink, err := h.Storage.Save(fileHeader, "resumes", userID)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	var experienceYears *float64
	if raw := c.PostForm("experienceYears"); raw != "" {
		if years, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
			experienceYears = &years
		}
	}

	resume, err := h.ResumeService.CreateFromPDF(c.Request.Context(), userID, fileHeader.Filename, file, cvLink, experienceYears)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Resume created successfully",
		"resume":  resume,
	})
}

// CreateFromText is POST /api/resumes/create-resume-text.
func (h *ResumeHandler) CreateFromText(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dtos.ResumeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No OCR content or summary provided"})
		return
	}

	content := req.OCRContent
	if content == "" {
		content = req.ResumeSummary
	}
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No OCR content or summary provided"})
		return
	}

	resume, err := h.ResumeService.CreateFromText(c.Request.Context(), userID, content, req.ExperienceYears)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Resume created successfully",
		"resume":  resume,
	})
}

// Search is POST /api/resumes/search-resumes.
func (h *ResumeHandler) Search(c *gin.Context) {
	var req dtos.ResumeSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid query text and number of results"})
		return
	}

	result, err := h.ResumeService.Search(c.Request.Context(), req.QueryText, req.NResults)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Recommend is POST /api/resumes/search-recommended-resume.
func (h *ResumeHandler) Recommend(c *gin.Context) {
	var req dtos.RecommendedResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query_text is required."})
		return
	}

	results, err := h.ResumeService.Recommend(c.Request.Context(), req.QueryText)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// UploadVideo is PUT /api/resumes/upload-video/:userId/:jobId.
func (h *ResumeHandler) UploadVideo(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	jobID, ok := parseID(c, "jobId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No video file uploaded"})
		return
	}

	videoURL, err := h.Storage.Save(fileHeader, "videos", userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resume, err := h.ResumeService.AddVideo(userID, jobID, videoURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Video uploaded successfully",
		"userId":         userID,
		"jobId":          jobID,
		"videoUrl":       videoURL,
		"emotionalLevel": resume.EmotionLevels,
	})
}

// UpdatePersonalityText is PUT /api/resumes/update-personality-text.
func (h *ResumeHandler) UpdatePersonalityText(c *gin.Context) {
	var req dtos.PersonalityTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "UserId and personalityText are required."})
		return
	}

	resume, err := h.ResumeService.UpdatePersonalityText(c.Request.Context(), req.UserID, req.PersonalityText)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Personality text and level updated successfully.",
		"data":    resume,
	})
}

// OCRContent is GET /api/resumes/ocr-content/:id.
func (h *ResumeHandler) OCRContent(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	content, err := h.ResumeService.OCRContent(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ocrContent": content})
}

// Details is GET /api/resumes/:id.
func (h *ResumeHandler) Details(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	resumes, err := h.ResumeService.Details(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Resumes retrieved successfully",
		"resumes": resumes,
	})
}

// Applicants is GET /api/resumes/:id/applicants. The path parameter is
// a job ID here; it shares the :id name with the details route because
// gin requires wildcards at the same position to agree.
func (h *ResumeHandler) Applicants(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid job ID format"})
		return
	}

	applicants, err := h.ResumeService.Applicants(jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicants)
}
