package dtos

// JobCreationRequest arrives as multipart form fields alongside the logo file.
type JobCreationRequest struct {
	UserID          uint   `form:"userId" binding:"required"`
	Title           string `form:"title" binding:"required"`
	ExperienceYears string `form:"experienceYears" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	PhoneNumber     string `form:"phoneNumber" binding:"required"`
	Description     string `form:"description" binding:"required"`
	Requirements    string `form:"requirements" binding:"required"`
	HRQuestions     string `form:"hrQuestions"`
}

type JobSearchRequest struct {
	JobType  string `json:"jobType" binding:"required"`
	JobCount int    `json:"jobCount" binding:"required,min=1"`
}

// JobUpdateRequest carries the mutable subset of a job post. Pointers
// distinguish "not sent" from zero values.
type JobUpdateRequest struct {
	Title           *string `json:"title"`
	ExperienceYears *string `json:"experienceYears"`
	Email           *string `json:"email"`
	PhoneNumber     *string `json:"phoneNumber"`
	Description     *string `json:"description"`
	Requirements    *string `json:"requirements"`
	HRQuestions     *string `json:"hrQuestions"`
}

// UserStatusRequest moves a user between the job's status arrays.
// Exactly one of the booleans is expected to be true.
type UserStatusRequest struct {
	UserID        uint `json:"userId" binding:"required"`
	AcceptedUsers bool `json:"acceptedUsers"`
	RejectedUsers bool `json:"rejectedUsers"`
	AppliedUsers  bool `json:"appliedUsers"`
	SelectedUsers bool `json:"selectedUsers"`
}
