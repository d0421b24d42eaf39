package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/services"
)

type EmployeeHandler struct {
	EmployeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{EmployeeService: employeeService}
}

// Add is POST /api/employee/add-employee-details.
func (h *EmployeeHandler) Add(c *gin.Context) {
	var req dtos.EmployeeDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required."})
		return
	}

	details, err := h.EmployeeService.Add(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Employee details added successfully, and email sent to the company.",
		"data":    details,
	})
}

// UpdateQualities is PUT /api/employee/update-employee-details.
func (h *EmployeeHandler) UpdateQualities(c *gin.Context) {
	var req dtos.EmployeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All required fields must be provided."})
		return
	}

	details, err := h.EmployeeService.UpdateQualities(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee details updated successfully.",
		"data":    details,
	})
}

// Get is GET /api/employee/get-employee-details/:userId.
func (h *EmployeeHandler) Get(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID format"})
		return
	}

	details, err := h.EmployeeService.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee details retrieved successfully.",
		"data":    details,
	})
}
