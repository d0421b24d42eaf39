package dtos

// ResumeTextRequest backs the create-resume-text endpoint: either raw
// OCR content or a free-form summary must be supplied.
type ResumeTextRequest struct {
	OCRContent      string   `json:"ocrContent"`
	ResumeSummary   string   `json:"resumeSummary"`
	ExperienceYears *float64 `json:"experienceYears"`
}

type ResumeSearchRequest struct {
	QueryText string `json:"query_text" binding:"required"`
	NResults  int    `json:"n_results" binding:"required,min=1"`
}

type RecommendedResumeRequest struct {
	QueryText string `json:"query_text" binding:"required"`
}

type PersonalityTextRequest struct {
	UserID          uint   `json:"userId" binding:"required"`
	PersonalityText string `json:"personalityText" binding:"required"`
}
