package dtos

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	RoleType string `json:"roleType" binding:"required,roletype"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ApplyJobRequest struct {
	UserID uint `json:"userId" binding:"required"`
	JobID  uint `json:"jobId" binding:"required"`
}
