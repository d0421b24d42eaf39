package services

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/models"
)

// Attempts at a single quiz topic are capped; after that the seeker has
// to pick another topic.
const maxAttemptsPerTopic = 3

// QuestionGenerator is the slice of the prediction client that builds
// quizzes for a topic at a difficulty.
type QuestionGenerator interface {
	GetQuestions(ctx context.Context, topic, difficulty string) ([]models.QuizQuestion, error)
}

type LearnService struct {
	DB        *gorm.DB
	Questions QuestionGenerator
}

func NewLearnService(db *gorm.DB, questions QuestionGenerator) *LearnService {
	return &LearnService{DB: db, Questions: questions}
}

// SaveLearningType upserts the seeker's learning classification.
func (s *LearnService) SaveLearningType(req *dtos.LearningTypeRequest) (*models.Learn, error) {
	var learn models.Learn
	err := s.DB.Where("user_id = ?", req.UserID).First(&learn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		learn = models.Learn{UserID: req.UserID}
	} else if err != nil {
		return nil, err
	}

	learn.LearningType = req.LearningType
	learn.LearningTypePoints = *req.LearningTypePoints
	if err := s.DB.Save(&learn).Error; err != nil {
		return nil, err
	}
	return &learn, nil
}

// UpdateLearningType is the strict variant: the record must exist.
func (s *LearnService) UpdateLearningType(req *dtos.LearningTypeRequest) (*models.Learn, error) {
	learn, err := s.byUser(req.UserID, false)
	if err != nil {
		return nil, err
	}

	learn.LearningType = req.LearningType
	learn.LearningTypePoints = *req.LearningTypePoints
	if err := s.DB.Save(learn).Error; err != nil {
		return nil, err
	}
	return learn, nil
}

// SetFilename starts a new quiz attempt on the given topic, enforcing
// the per-topic attempt cap.
func (s *LearnService) SetFilename(userID uint, filename string) (*models.Learn, error) {
	learn, err := s.byUser(userID, true)
	if err != nil {
		return nil, err
	}

	attempts := 0
	for _, q := range learn.QuizAttempts {
		if q.Filename == filename {
			attempts++
		}
	}
	if attempts >= maxAttemptsPerTopic {
		return nil, ErrInvalid("You have reached the maximum number of attempts for this topic. Please choose a different topic.")
	}

	attempt := models.QuizAttempt{LearnID: learn.ID, Filename: filename}
	if err := s.DB.Create(&attempt).Error; err != nil {
		return nil, err
	}
	learn.QuizAttempts = append(learn.QuizAttempts, attempt)
	return learn, nil
}

// QuizQuestionsResult is what FetchQuestions hands back to the client.
type QuizQuestionsResult struct {
	Filename     string                `json:"filename"`
	LearningType string                `json:"learningType"`
	Questions    []models.QuizQuestion `json:"questions"`
}

// FetchQuestions generates questions for the most recent attempt's
// topic at the seeker's learning-type difficulty and stores them on the
// attempt. Every generation bumps the attempt counter.
func (s *LearnService) FetchQuestions(ctx context.Context, userID uint) (*QuizQuestionsResult, error) {
	learn, err := s.byUser(userID, true)
	if err != nil {
		return nil, err
	}

	recent := latestAttempt(learn)
	if recent == nil || recent.Filename == "" {
		return nil, ErrInvalid("No filename associated with this user")
	}
	if learn.LearningType == "" {
		return nil, ErrInvalid("No learningType associated with this user")
	}

	questions, err := s.Questions.GetQuestions(ctx, recent.Filename, learn.LearningType)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNotFound("No questions found for the given filename and learningType")
	}

	learn.AttemptCount++
	if err := s.DB.Model(learn).Update("attempt_count", learn.AttemptCount).Error; err != nil {
		return nil, err
	}

	recent.Questions = questions
	if err := s.DB.Save(recent).Error; err != nil {
		return nil, err
	}

	return &QuizQuestionsResult{
		Filename:     recent.Filename,
		LearningType: learn.LearningType,
		Questions:    questions,
	}, nil
}

// SubmitQuiz writes the score into the most recent attempt.
func (s *LearnService) SubmitQuiz(req *dtos.QuizSubmitRequest) (*models.QuizAttempt, error) {
	learn, err := s.byUser(req.UserID, true)
	if err != nil {
		return nil, err
	}

	recent := latestAttempt(learn)
	if recent == nil {
		return nil, ErrInvalid("No quiz attempt found for the given user")
	}

	recent.Score = *req.Score
	recent.TimeTaken = *req.TimeTaken
	recent.CorrectAnswers = *req.CorrectAnswers
	recent.TotalQuestions = *req.TotalQuestions
	if err := s.DB.Save(recent).Error; err != nil {
		return nil, err
	}

	if learn.LearningType != req.LearningType {
		if err := s.DB.Model(learn).Update("learning_type", req.LearningType).Error; err != nil {
			return nil, err
		}
	}
	return recent, nil
}

// QuizResultRow is one user's line on the quiz leaderboard: their most
// recent attempt plus their learning classification.
type QuizResultRow struct {
	FullName           string `json:"fullName"`
	LearningType       string `json:"learningType"`
	LearningTypePoints int    `json:"learningTypePoints"`
	Score              int    `json:"score"`
	TimeTaken          int    `json:"timeTaken"`
	CorrectAnswers     int    `json:"correctAnswers"`
	TotalQuestions     int    `json:"totalQuestions"`
}

// Results aggregates the latest attempt of every user, best score first.
func (s *LearnService) Results() ([]QuizResultRow, error) {
	var learns []models.Learn
	if err := s.DB.Preload("QuizAttempts").Find(&learns).Error; err != nil {
		return nil, err
	}

	rows := make([]QuizResultRow, 0, len(learns))
	for i := range learns {
		recent := latestAttempt(&learns[i])
		if recent == nil {
			continue
		}

		var user models.User
		if err := s.DB.First(&user, learns[i].UserID).Error; err != nil {
			continue
		}

		rows = append(rows, QuizResultRow{
			FullName:           user.FullName,
			LearningType:       learns[i].LearningType,
			LearningTypePoints: learns[i].LearningTypePoints,
			Score:              recent.Score,
			TimeTaken:          recent.TimeTaken,
			CorrectAnswers:     recent.CorrectAnswers,
			TotalQuestions:     recent.TotalQuestions,
		})
	}

	if len(rows) == 0 {
		return nil, ErrNotFound("No quiz results found")
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	return rows, nil
}

// ResultsForUser returns the full attempt history for one user.
func (s *LearnService) ResultsForUser(userID uint) (*models.Learn, error) {
	var learn models.Learn
	err := s.DB.Preload("QuizAttempts").Where("user_id = ?", userID).First(&learn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("No quiz results found for this user")
		}
		return nil, err
	}
	return &learn, nil
}

func (s *LearnService) byUser(userID uint, withAttempts bool) (*models.Learn, error) {
	var learn models.Learn
	q := s.DB
	if withAttempts {
		q = q.Preload("QuizAttempts", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_attempts.id ASC")
		})
	}
	if err := q.Where("user_id = ?", userID).First(&learn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Learn record not found for the given userId")
		}
		return nil, err
	}
	return &learn, nil
}

func latestAttempt(learn *models.Learn) *models.QuizAttempt {
	if len(learn.QuizAttempts) == 0 {
		return nil
	}
	return &learn.QuizAttempts[len(learn.QuizAttempts)-1]
}
