package dtos

import "time"

type EmployeeDetailsRequest struct {
	UserID             uint   `json:"userId" binding:"required"`
	CompanyName        string `json:"companyName" binding:"required"`
	CompanyEmail       string `json:"companyEmail" binding:"required,email"`
	RegistrationNumber string `json:"registrationNumber" binding:"required"`
	Position           string `json:"position" binding:"required"`

	EmploymentStartDate *time.Time `json:"employmentStartDate"`
	EmploymentEndDate   *time.Time `json:"employmentEndDate"`
}

type EmployeeUpdateRequest struct {
	UserID            uint   `json:"userId" binding:"required"`
	EmployeeQualities string `json:"employeeQualities" binding:"required"`
}
