package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/services"
	"github.com/jobvista/backend/internal/storage"
)

type UserHandler struct {
	UserService *services.UserService
	Storage     *storage.Store
}

func NewUserHandler(userService *services.UserService, store *storage.Store) *UserHandler {
	return &UserHandler{UserService: userService, Storage: store}
}

// Register is POST /api/users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"warn": "Important field(s) are empty"})
		return
	}

	if err := h.UserService.Register(&req); err != nil {
		var svcErr *services.Error
		if errors.As(err, &svcErr) {
			c.JSON(svcErr.Code, gin.H{"warn": svcErr.Message})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User registered successfully"})
}

// Login is POST /api/users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Email or password fields are empty"})
		return
	}

	token, user, err := h.UserService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"Info": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"fullName": user.FullName,
			"roleType": user.RoleType,
		},
		"User": user,
	})
}

// UploadImage is PUT /api/users/upload-image/:userId (multipart).
func (h *UserHandler) UploadImage(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file uploaded"})
		return
	}

	url, err := h.Storage.Save(file, "user-images", userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.UserService.SetImage(userID, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image uploaded successfully",
		"userId":   userID,
		"imageUrl": url,
	})
}

// ApplyJob is PUT /api/users/apply-job.
func (h *UserHandler) ApplyJob(c *gin.Context) {
	var req dtos.ApplyJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	user, job, err := h.UserService.ApplyJob(req.UserID, req.JobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Successfully applied for the job",
		"updatedUser": user,
		"updatedJob":  job,
	})
}

// AppliedJobs is GET /api/users/applied-jobs/:userId.
func (h *UserHandler) AppliedJobs(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	jobs, err := h.UserService.AppliedJobs(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(jobs) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "User has not applied to any jobs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appliedJobs": jobs})
}
