package dtos

type FeedbackRequest struct {
	UserID       uint   `json:"userId" binding:"required"`
	FeedbackText string `json:"feedbackText" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
}
