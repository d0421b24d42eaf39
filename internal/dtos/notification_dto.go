package dtos

// AcceptJobRequest is the one-shot accept/reject decision.
type AcceptJobRequest struct {
	JobID    uint   `json:"jobId" binding:"required"`
	UserID   uint   `json:"userId" binding:"required"`
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

// StatusUpdateRequest is the re-settable variant of the same decision.
type StatusUpdateRequest struct {
	JobID    uint   `json:"jobId" binding:"required"`
	UserID   uint   `json:"userId" binding:"required"`
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}
