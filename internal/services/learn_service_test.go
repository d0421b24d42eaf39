package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestSaveAndUpdateLearningType(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewLearnService(db, &stubPredictor{})

	user := seedUser(t, db, "Ada Lovelace", "ada@example.com")

	learn, err := svc.SaveLearningType(&dtos.LearningTypeRequest{
		UserID:             user.ID,
		LearningType:       "Visual",
		LearningTypePoints: intPtr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "Visual", learn.LearningType)

	// Saving again updates in place.
	learn, err = svc.SaveLearningType(&dtos.LearningTypeRequest{
		UserID:             user.ID,
		LearningType:       "Auditory",
		LearningTypePoints: intPtr(8),
	})
	require.NoError(t, err)
	assert.Equal(t, "Auditory", learn.LearningType)

	var count int64
	require.NoError(t, db.Model(&models.Learn{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The strict update refuses unknown users.
	_, err = svc.UpdateLearningType(&dtos.LearningTypeRequest{
		UserID:             999,
		LearningType:       "Visual",
		LearningTypePoints: intPtr(1),
	})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Code)
}

func TestSetFilenameCapsAttemptsPerTopic(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewLearnService(db, &stubPredictor{})

	user := seedUser(t, db, "Ada Lovelace", "ada@example.com")
	_, err := svc.SaveLearningType(&dtos.LearningTypeRequest{
		UserID:             user.ID,
		LearningType:       "Visual",
		LearningTypePoints: intPtr(12),
	})
	require.NoError(t, err)

	for i := 0; i < maxAttemptsPerTopic; i++ {
		_, err := svc.SetFilename(user.ID, "golang-basics")
		require.NoError(t, err)
	}

	_, err = svc.SetFilename(user.ID, "golang-basics")
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Code)
	assert.Equal(t, "You have reached the maximum number of attempts for this topic. Please choose a different topic.", svcErr.Message)

	// A different topic opens a fresh budget.
	_, err = svc.SetFilename(user.ID, "sql-joins")
	require.NoError(t, err)
}

func TestFetchQuestionsStoresOnLatestAttempt(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	predictor := &stubPredictor{
		questions: []models.QuizQuestion{
			{
				Question:      "What does a goroutine cost at start?",
				AnswerChoices: []string{"2KB stack", "2MB stack", "A thread", "Nothing"},
				CorrectAnswer: "2KB stack",
			},
		},
	}
	svc := NewLearnService(db, predictor)

	user := seedUser(t, db, "Ada Lovelace", "ada@example.com")
	_, err := svc.SaveLearningType(&dtos.LearningTypeRequest{
		UserID:             user.ID,
		LearningType:       "Visual",
		LearningTypePoints: intPtr(12),
	})
	require.NoError(t, err)

	// No attempt yet means no topic to generate from.
	_, err = svc.FetchQuestions(context.Background(), user.ID)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "No filename associated with this user", svcErr.Message)

	_, err = svc.SetFilename(user.ID, "golang-basics")
	require.NoError(t, err)

	result, err := svc.FetchQuestions(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "golang-basics", result.Filename)
	assert.Equal(t, "Visual", result.LearningType)
	require.Len(t, result.Questions, 1)

	var learn models.Learn
	require.NoError(t, db.Preload("QuizAttempts").Where("user_id = ?", user.ID).First(&learn).Error)
	assert.Equal(t, 1, learn.AttemptCount)
	require.Len(t, learn.QuizAttempts, 1)
	require.Len(t, learn.QuizAttempts[0].Questions, 1)
}

func TestFetchQuestionsEmptyGeneration(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewLearnService(db, &stubPredictor{})

	user := seedUser(t, db, "Ada Lovelace", "ada@example.com")
	_, err := svc.SaveLearningType(&dtos.LearningTypeRequest{
		UserID:             user.ID,
		LearningType:       "Visual",
		LearningTypePoints: intPtr(12),
	})
	require.NoError(t, err)
	_, err = svc.SetFilename(user.ID, "golang-basics")
	require.NoError(t, err)

	_, err = svc.FetchQuestions(context.Background(), user.ID)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Code)
	assert.Equal(t, "No questions found for the given filename and learningType", svcErr.Message)
}

func TestSubmitQuizAndResults(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewLearnService(db, &stubPredictor{})

	ada := seedUser(t, db, "Ada Lovelace", "ada@example.com")
	grace := seedUser(t, db, "Grace Hopper", "grace@example.com")

	for _, u := range []*models.User{ada, grace} {
		_, err := svc.SaveLearningType(&dtos.LearningTypeRequest{
			UserID:             u.ID,
			LearningType:       "Visual",
			LearningTypePoints: intPtr(12),
		})
		require.NoError(t, err)
		_, err = svc.SetFilename(u.ID, "golang-basics")
		require.NoError(t, err)
	}

	// Submitting without any attempt fails.
	_, err := svc.SubmitQuiz(&dtos.QuizSubmitRequest{
		UserID:         999,
		Score:          intPtr(1),
		TimeTaken:      intPtr(1),
		CorrectAnswers: intPtr(1),
		TotalQuestions: intPtr(1),
		LearningType:   "Visual",
	})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)

	_, err = svc.SubmitQuiz(&dtos.QuizSubmitRequest{
		UserID:         ada.ID,
		Score:          intPtr(70),
		TimeTaken:      intPtr(120),
		CorrectAnswers: intPtr(7),
		TotalQuestions: intPtr(10),
		LearningType:   "Visual",
	})
	require.NoError(t, err)

	_, err = svc.SubmitQuiz(&dtos.QuizSubmitRequest{
		UserID:         grace.ID,
		Score:          intPtr(90),
		TimeTaken:      intPtr(100),
		CorrectAnswers: intPtr(9),
		TotalQuestions: intPtr(10),
		LearningType:   "Visual",
	})
	require.NoError(t, err)

	rows, err := svc.Results()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Leaderboard order: best score first.
	assert.Equal(t, "Grace Hopper", rows[0].FullName)
	assert.Equal(t, 90, rows[0].Score)
	assert.Equal(t, "Ada Lovelace", rows[1].FullName)

	learn, err := svc.ResultsForUser(ada.ID)
	require.NoError(t, err)
	require.Len(t, learn.QuizAttempts, 1)
	assert.Equal(t, 70, learn.QuizAttempts[0].Score)

	_, err = svc.ResultsForUser(999)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "No quiz results found for this user", svcErr.Message)
}
