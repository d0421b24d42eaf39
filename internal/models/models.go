package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role values accepted at registration. The role is fixed for the
// lifetime of the account.
const (
	RoleJobSeeker = "Job Seeker"
	RoleRecruiter = "Recruiter"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName string `gorm:"not null" json:"fullName"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	RoleType string `gorm:"not null" json:"roleType"`

	UserImgURL string `json:"userImgUrl"`

	// Jobs the seeker has applied to. Mirrors Job.AppliedUsers.
	AppliedJobIDs datatypes.JSONSlice[uint] `json:"appliedJobIds"`
}

type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Recruiter who posted the job.
	CreatedBy uint `gorm:"index;not null" json:"userId"`

	Title           string `gorm:"not null" json:"title"`
	Description     string `gorm:"type:text;not null" json:"description"`
	Requirements    string `gorm:"type:text;not null" json:"requirements"`
	ExperienceYears string `json:"experienceYears"`
	Email           string `gorm:"not null" json:"email"`
	PhoneNumber     string `gorm:"not null" json:"phoneNumber"`
	Logo            string `json:"logo"`
	HRQuestions     string `gorm:"type:text" json:"hrQuestions"`

	// Per-user hiring state. A user id lives in at most one of
	// accepted/rejected at any time.
	AppliedUsers  datatypes.JSONSlice[uint] `json:"appliedUsers"`
	SelectedUsers datatypes.JSONSlice[uint] `json:"selectedUsers"`
	AcceptedUsers datatypes.JSONSlice[uint] `json:"acceptedUsers"`
	RejectedUsers datatypes.JSONSlice[uint] `json:"rejectedUsers"`
}

// SearchText is the text indexed by the vector-search service for this job.
func (j *Job) SearchText() string {
	return j.Title + j.Description + j.ExperienceYears + j.Requirements
}

// ResumePage is one page of OCR output from the external PDF reader.
type ResumePage struct {
	PageNumber int    `json:"page_number"`
	Content    string `json:"content"`
}

// VideoLink ties an uploaded interview video to a job.
type VideoLink struct {
	JobID uint   `json:"jobId"`
	Link  string `json:"link"`
}

// EmotionLevel is the per-job emotion map produced by the external
// emotion-prediction service from an interview video.
type EmotionLevel struct {
	JobID  uint               `json:"jobId"`
	Levels map[string]float64 `json:"emotionLevel"`
}

type Resume struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"index;not null" json:"userId"`

	// Public URL of the uploaded CV file. Set only after a successful upload.
	CVLink string `json:"cvLink"`

	OCRContent       datatypes.JSONSlice[ResumePage]   `json:"ocrContent"`
	VideoLinks       datatypes.JSONSlice[VideoLink]    `json:"videoLinks"`
	EmotionLevels    datatypes.JSONSlice[EmotionLevel] `json:"emotionLevels"`
	PersonalityText  string                            `gorm:"type:text" json:"personalityText"`
	PersonalityLevel datatypes.JSONMap                 `json:"personalityLevel"`
	ExperienceYears  float64                           `json:"experienceYears"`
}

// FullText returns the OCR text used for vector indexing. Only the
// first page is indexed.
func (r *Resume) FullText() string {
	if len(r.OCRContent) == 0 {
		return ""
	}
	return r.OCRContent[0].Content
}

// Prediction states for asynchronous personality analysis.
const (
	PredictionPending    = "pending"
	PredictionProcessing = "processing"
	PredictionCompleted  = "completed"
	PredictionFailed     = "failed"
)

type EmployeeDetails struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Unique index closes the check-then-insert race: two concurrent
	// creates for one user cannot both commit.
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	CompanyName        string `gorm:"not null" json:"companyName"`
	CompanyEmail       string `gorm:"not null" json:"companyEmail"`
	RegistrationNumber string `json:"registrationNumber"`
	Position           string `json:"position"`

	EmploymentStartDate *time.Time `json:"employmentStartDate"`
	EmploymentEndDate   *time.Time `json:"employmentEndDate"`

	EmployeeQualities        string            `gorm:"type:text" json:"employeeQualities"`
	EmployeePersonalityLevel datatypes.JSONMap `json:"employeePersonalityLevel"`

	PredictionStatus string `gorm:"default:pending" json:"predictionStatus"`
}

// Notifications are an append-only log; there is no update path.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID   uint   `gorm:"index;not null" json:"userId"`
	Message  string `gorm:"not null" json:"message"`
	Link     string `json:"link"`
	Accepted bool   `json:"accepted"`
	Read     bool   `json:"read"`
}

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID       uint   `gorm:"index;not null" json:"userId"`
	FeedbackText string `gorm:"type:text;not null" json:"feedbackText"`
	Rating       int    `gorm:"not null" json:"rating"`
}

// QuizQuestion is one generated question inside a quiz attempt.
type QuizQuestion struct {
	Question      string   `json:"question"`
	AnswerChoices []string `json:"answer_choices"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type QuizAttempt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	LearnID uint `gorm:"index;not null" json:"-"`

	Score          int    `json:"score"`
	TimeTaken      int    `json:"timeTaken"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalQuestions int    `json:"totalQuestions"`
	Filename       string `json:"filename"`

	Questions datatypes.JSONSlice[QuizQuestion] `json:"questions"`
}

type Learn struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	LearningType       string `json:"learningType"`
	LearningTypePoints int    `json:"learningTypePoints"`

	// Incremented every time questions are generated for an attempt.
	AttemptCount int `json:"attemptCount"`

	QuizAttempts []QuizAttempt `gorm:"foreignKey:LearnID" json:"quizAttempts"`
}
