package dtos

type LearningTypeRequest struct {
	UserID             uint   `json:"userId" binding:"required"`
	LearningType       string `json:"learningType" binding:"required"`
	LearningTypePoints *int   `json:"learningTypePoints" binding:"required"`
}

type QuizSubmitRequest struct {
	UserID         uint   `json:"userId" binding:"required"`
	Score          *int   `json:"score" binding:"required"`
	TimeTaken      *int   `json:"timeTaken" binding:"required"`
	CorrectAnswers *int   `json:"correctAnswers" binding:"required"`
	TotalQuestions *int   `json:"totalQuestions" binding:"required"`
	LearningType   string `json:"learningType" binding:"required"`
}

type FilenameRequest struct {
	Filename string `json:"filename" binding:"required"`
}

type FetchQuestionsRequest struct {
	UserID uint `json:"userId" binding:"required"`
}
