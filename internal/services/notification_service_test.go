package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/models"
)

func TestAcceptJobRejectsAlreadyProcessedUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewNotificationService(db)

	user := seedUser(t, db, "Ada Lovelace", "ada@example.com")
	job := seedJob(t, db, 99, "Backend Engineer")
	job.AcceptedUsers = append(job.AcceptedUsers, user.ID)
	require.NoError(t, db.Save(job).Error)

	_, err := svc.AcceptJob(&dtos.AcceptJobRequest{JobID: job.ID, UserID: user.ID, Accepted: true})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Code)
	assert.Equal(t, "User has already been processed for this job", svcErr.Message)
}

func TestAcceptJobCreatesNotification(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewNotificationService(db)

	user := seedUser(t, db, "Ada Lovelace", "ada@example.com")
	job := seedJob(t, db, 99, "Backend Engineer")

	decision, err := svc.AcceptJob(&dtos.AcceptJobRequest{
		JobID:    job.ID,
		UserID:   user.ID,
		Accepted: true,
		Message:  "Welcome aboard!",
	})
	require.NoError(t, err)
	assert.Equal(t, `User has been accepted for the job "Backend Engineer".`, decision.Message)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].Accepted)
	assert.Contains(t, notifications[0].Message, "has been accepted")
	assert.Contains(t, notifications[0].Message, "Welcome aboard!")
}

func TestUpdateStatusNeverLeavesUserInBothLists(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewNotificationService(db)

	user := seedUser(t, db, "Ada Lovelace", "ada@example.com")
	job := seedJob(t, db, 99, "Backend Engineer")

	_, err := svc.UpdateStatus(&dtos.StatusUpdateRequest{JobID: job.ID, UserID: user.ID, Accepted: true})
	require.NoError(t, err)

	// Flipping the decision moves the user, it does not duplicate them.
	decision, err := svc.UpdateStatus(&dtos.StatusUpdateRequest{JobID: job.ID, UserID: user.ID, Accepted: false})
	require.NoError(t, err)
	assert.Equal(t, `User has been rejected for the job "Backend Engineer".`, decision.Message)

	var got models.Job
	require.NoError(t, db.First(&got, job.ID).Error)
	assert.NotContains(t, []uint(got.AcceptedUsers), user.ID)
	assert.Contains(t, []uint(got.RejectedUsers), user.ID)

	// Every decision stays in the log.
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestForUserEmptyIsNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewNotificationService(db)

	_, err := svc.ForUser(42)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Code)
	assert.Equal(t, "No notifications found", svcErr.Message)
}
