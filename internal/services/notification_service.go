package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/models"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Decision is the outcome envelope for both notification workflows.
type Decision struct {
	JobID    uint   `json:"jobId"`
	UserID   uint   `json:"userId"`
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

// AcceptJob is the one-shot accept/reject decision. A user that is
// already in either list cannot be processed again.
func (s *NotificationService) AcceptJob(req *dtos.AcceptJobRequest) (*Decision, error) {
	var job models.Job
	if err := s.DB.First(&job, req.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Job not found")
		}
		return nil, err
	}

	if containsID(job.AcceptedUsers, req.UserID) || containsID(job.RejectedUsers, req.UserID) {
		return nil, ErrInvalid("User has already been processed for this job")
	}

	notification := models.Notification{
		UserID:   req.UserID,
		Accepted: req.Accepted,
	}
	var outcome string
	if req.Accepted {
		notification.Message = fmt.Sprintf("Your application for the job %q has been accepted! %s", job.Title, req.Message)
		outcome = fmt.Sprintf("User has been accepted for the job %q.", job.Title)
	} else {
		notification.Message = fmt.Sprintf("Your application for the job %q has been rejected.", job.Title)
		outcome = fmt.Sprintf("User has been rejected for the job %q.", job.Title)
	}

	if err := s.DB.Create(&notification).Error; err != nil {
		return nil, err
	}

	return &Decision{JobID: req.JobID, UserID: req.UserID, Accepted: req.Accepted, Message: outcome}, nil
}

// UpdateStatus is the re-settable variant: the user is pulled out of
// the opposite list before joining the target one, so no id is ever in
// both. Every call appends a fresh notification; the notifications
// table is a log, not a current-status field.
func (s *NotificationService) UpdateStatus(req *dtos.StatusUpdateRequest) (*Decision, error) {
	var job models.Job
	if err := s.DB.First(&job, req.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Job not found")
		}
		return nil, err
	}

	if req.Accepted {
		job.RejectedUsers = removeID(job.RejectedUsers, req.UserID)
		if !containsID(job.AcceptedUsers, req.UserID) {
			job.AcceptedUsers = append(job.AcceptedUsers, req.UserID)
		}
	} else {
		job.AcceptedUsers = removeID(job.AcceptedUsers, req.UserID)
		if !containsID(job.RejectedUsers, req.UserID) {
			job.RejectedUsers = append(job.RejectedUsers, req.UserID)
		}
	}

	if err := s.DB.Save(&job).Error; err != nil {
		return nil, err
	}

	notification := models.Notification{
		UserID:   req.UserID,
		Accepted: req.Accepted,
	}
	if req.Accepted {
		notification.Message = fmt.Sprintf("Your application for the job %q has been accepted! %s", job.Title, req.Message)
	} else {
		notification.Message = fmt.Sprintf("Your application for the job %q has been rejected.", job.Title)
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		return nil, err
	}

	verdict := "rejected"
	if req.Accepted {
		verdict = "accepted"
	}
	return &Decision{
		JobID:    req.JobID,
		UserID:   req.UserID,
		Accepted: req.Accepted,
		Message:  fmt.Sprintf("User has been %s for the job %q.", verdict, job.Title),
	}, nil
}

func (s *NotificationService) ForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	if len(notifications) == 0 {
		return nil, ErrNotFound("No notifications found")
	}
	return notifications, nil
}
