package services

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jobvista/backend/internal/database"
	"github.com/jobvista/backend/internal/models"
	"github.com/jobvista/backend/internal/queue"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, fullName, email string) *models.User {
	t.Helper()

	user := &models.User{
		FullName: fullName,
		Email:    email,
		Password: "irrelevant",
		RoleType: models.RoleJobSeeker,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedJob(t *testing.T, db *gorm.DB, createdBy uint, title string) *models.Job {
	t.Helper()

	job := &models.Job{
		CreatedBy:       createdBy,
		Title:           title,
		Description:     "Build and run backend services",
		Requirements:    "Go, SQL",
		ExperienceYears: "3",
		Email:           "hiring@example.com",
		PhoneNumber:     "0123456789",
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func seedResume(t *testing.T, db *gorm.DB, userID uint, content string) *models.Resume {
	t.Helper()

	resume := &models.Resume{
		UserID:     userID,
		OCRContent: []models.ResumePage{{PageNumber: 1, Content: content}},
	}
	require.NoError(t, db.Create(resume).Error)
	return resume
}

// stubVector satisfies both JobVectorIndex and ResumeVectorIndex.
type stubVector struct {
	jobMatches    []VectorMatch
	resumeMatches []VectorMatch

	indexedJobs    []uint
	deletedJobs    []uint
	indexedResumes []uint
	deletedResumes []uint

	deleteJobErr    error
	deleteResumeErr error
}

func (s *stubVector) IndexJob(_ context.Context, jobID uint, _ string) error {
	s.indexedJobs = append(s.indexedJobs, jobID)
	return nil
}

func (s *stubVector) DeleteJob(_ context.Context, jobID uint) error {
	if s.deleteJobErr != nil {
		return s.deleteJobErr
	}
	s.deletedJobs = append(s.deletedJobs, jobID)
	return nil
}

func (s *stubVector) SearchJobs(context.Context, string, int) ([]VectorMatch, error) {
	return s.jobMatches, nil
}

func (s *stubVector) IndexResume(_ context.Context, userID uint, _ string) error {
	s.indexedResumes = append(s.indexedResumes, userID)
	return nil
}

func (s *stubVector) DeleteResume(_ context.Context, userID uint) error {
	if s.deleteResumeErr != nil {
		return s.deleteResumeErr
	}
	s.deletedResumes = append(s.deletedResumes, userID)
	return nil
}

func (s *stubVector) SearchResumes(context.Context, string, int) ([]VectorMatch, error) {
	return s.resumeMatches, nil
}

// stubPredictor satisfies ResumePredictor and QuestionGenerator.
type stubPredictor struct {
	pages       []models.ResumePage
	personality map[string]interface{}
	questions   []models.QuizQuestion

	personalityErr error
}

func (s *stubPredictor) ExtractText(context.Context, string, io.Reader) ([]models.ResumePage, error) {
	return s.pages, nil
}

func (s *stubPredictor) PredictPersonality(context.Context, string) (map[string]interface{}, error) {
	if s.personalityErr != nil {
		return nil, s.personalityErr
	}
	return s.personality, nil
}

func (s *stubPredictor) GetQuestions(context.Context, string, string) ([]models.QuizQuestion, error) {
	return s.questions, nil
}

// stubQueue records published tasks instead of touching a broker.
type stubQueue struct {
	tasks []queue.Task
	err   error
}

func (s *stubQueue) Publish(task queue.Task) error {
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, task)
	return nil
}
