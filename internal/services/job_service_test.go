package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/models"
)

func TestJobCreateIndexesAndNotifies(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seeker := seedUser(t, db, "Ada Lovelace", "ada@example.com")

	vector := &stubVector{
		resumeMatches: []VectorMatch{
			{ID: strconv.FormatUint(uint64(seeker.ID), 10), Distance: 0.5},
		},
	}
	svc := NewJobService(db, vector, "http://localhost:8080")

	req := &dtos.JobCreationRequest{
		UserID:          99,
		Title:           "Backend Engineer",
		Description:     "Build backend services",
		Requirements:    "Go, SQL",
		ExperienceYears: "3",
		Email:           "hiring@example.com",
		PhoneNumber:     "0123456789",
	}
	job, matches, err := svc.Create(context.Background(), req, "http://localhost:8080/uploads/logos/99/logo.png")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, []uint{job.ID}, vector.indexedJobs)

	// A distance of 0.5 maps to a 66.67% match in the notification.
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", seeker.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "New Job Available: Backend Engineer")
	assert.Contains(t, notifications[0].Message, "66.67%")
}

func TestJobSearchSortsByDistance(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	near := seedJob(t, db, 99, "Backend Engineer")
	far := seedJob(t, db, 99, "Frontend Engineer")

	vector := &stubVector{
		jobMatches: []VectorMatch{
			{ID: strconv.FormatUint(uint64(far.ID), 10), Distance: 0.9},
			{ID: strconv.FormatUint(uint64(near.ID), 10), Distance: 0.1},
		},
	}
	svc := NewJobService(db, vector, "http://localhost:8080")

	jobs, err := svc.Search(context.Background(), "backend", 2)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, near.ID, jobs[0].ID)
	assert.Equal(t, far.ID, jobs[1].ID)
}

func TestJobSearchMissingFromDatabase(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	vector := &stubVector{
		jobMatches: []VectorMatch{{ID: "12345", Distance: 0.1}},
	}
	svc := NewJobService(db, vector, "http://localhost:8080")

	_, err := svc.Search(context.Background(), "backend", 1)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Code)
	assert.Equal(t, "Some jobs were not found in the database", svcErr.Message)
}

func TestJobUpdatePartialFields(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	job := seedJob(t, db, 99, "Backend Engineer")
	svc := NewJobService(db, &stubVector{}, "http://localhost:8080")

	title := "Senior Backend Engineer"
	updated, err := svc.Update(job.ID, &dtos.JobUpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	// Untouched fields keep their values.
	assert.Equal(t, job.Description, updated.Description)
}

func TestJobDeleteRemovesFromIndex(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	job := seedJob(t, db, 99, "Backend Engineer")
	vector := &stubVector{}
	svc := NewJobService(db, vector, "http://localhost:8080")

	_, err := svc.Delete(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{job.ID}, vector.deletedJobs)

	var count int64
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.Delete(context.Background(), job.ID)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Code)
}

func TestSetUserStatusNeverLeavesUserInTwoLists(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := seedUser(t, db, "Ada Lovelace", "ada@example.com")
	job := seedJob(t, db, 99, "Backend Engineer")
	job.AppliedUsers = append(job.AppliedUsers, user.ID)
	require.NoError(t, db.Save(job).Error)

	svc := NewJobService(db, &stubVector{}, "http://localhost:8080")

	selected, err := svc.SetUserStatus(job.ID, &dtos.UserStatusRequest{UserID: user.ID, SelectedUsers: true})
	require.NoError(t, err)
	assert.Contains(t, []uint(selected.SelectedUsers), user.ID)
	assert.NotContains(t, []uint(selected.AppliedUsers), user.ID)

	// Selection notifies the seeker to record an interview video.
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "You are selected for this job")

	accepted, err := svc.SetUserStatus(job.ID, &dtos.UserStatusRequest{UserID: user.ID, AcceptedUsers: true})
	require.NoError(t, err)
	assert.Contains(t, []uint(accepted.AcceptedUsers), user.ID)
	assert.NotContains(t, []uint(accepted.SelectedUsers), user.ID)
	assert.NotContains(t, []uint(accepted.AppliedUsers), user.ID)
	assert.NotContains(t, []uint(accepted.RejectedUsers), user.ID)
}
