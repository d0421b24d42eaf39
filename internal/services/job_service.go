package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/models"
)

// JobVectorIndex is the slice of the vector client the job service
// uses. Narrowed to an interface so tests can stub the external side.
type JobVectorIndex interface {
	IndexJob(ctx context.Context, jobID uint, text string) error
	DeleteJob(ctx context.Context, jobID uint) error
	SearchJobs(ctx context.Context, query string, n int) ([]VectorMatch, error)
	SearchResumes(ctx context.Context, query string, n int) ([]VectorMatch, error)
}

type JobService struct {
	DB            *gorm.DB
	Vector        JobVectorIndex
	PublicBaseURL string
}

func NewJobService(db *gorm.DB, vector JobVectorIndex, publicBaseURL string) *JobService {
	return &JobService{DB: db, Vector: vector, PublicBaseURL: publicBaseURL}
}

// JobWithDistance is a job enriched with its match distance from the
// vector-search service.
type JobWithDistance struct {
	models.Job
	Distance float64 `json:"distance"`
}

// Create persists the job, indexes its text for matching and notifies
// seekers whose resumes match. The external calls are best effort: a
// matching-service outage must not lose the job post.
func (s *JobService) Create(ctx context.Context, req *dtos.JobCreationRequest, logoURL string) (*models.Job, []VectorMatch, error) {
	job := &models.Job{
		CreatedBy:       req.UserID,
		Title:           req.Title,
		ExperienceYears: req.ExperienceYears,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Description:     req.Description,
		Requirements:    req.Requirements,
		HRQuestions:     req.HRQuestions,
		Logo:            logoURL,
	}
	if err := s.DB.Create(job).Error; err != nil {
		return nil, nil, err
	}

	jobText := job.SearchText()

	if err := s.Vector.IndexJob(ctx, job.ID, jobText); err != nil {
		log.WithError(err).WithField("jobId", job.ID).Error("failed to index job for matching")
	}

	matches, err := s.Vector.SearchResumes(ctx, jobText, 50)
	if err != nil {
		log.WithError(err).WithField("jobId", job.ID).Error("failed to search matching resumes")
		matches = nil
	}

	if len(matches) > 0 {
		notifications := make([]models.Notification, 0, len(matches))
		for _, m := range matches {
			userID, err := strconv.ParseUint(m.ID, 10, 64)
			if err != nil {
				continue
			}
			notifications = append(notifications, models.Notification{
				UserID: uint(userID),
				Message: fmt.Sprintf("New Job Available: %s. Your matching percentage is %.2f%%",
					job.Title, MatchPercentage(m.Distance)),
				Link: fmt.Sprintf("%s/jobs/%d", s.PublicBaseURL, job.ID),
			})
		}
		if len(notifications) > 0 {
			if err := s.DB.Create(&notifications).Error; err != nil {
				log.WithError(err).Error("failed to create match notifications")
			}
		}
	}

	return job, matches, nil
}

// Search delegates ranking to the vector service and enriches the hits
// with the stored job documents, sorted ascending by distance.
func (s *JobService) Search(ctx context.Context, jobType string, jobCount int) ([]JobWithDistance, error) {
	matches, err := s.Vector.SearchJobs(ctx, jobType, jobCount)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []JobWithDistance{}, nil
	}

	ids := make([]uint, 0, len(matches))
	distances := make(map[uint]float64, len(matches))
	for _, m := range matches {
		id, err := strconv.ParseUint(m.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
		distances[uint(id)] = m.Distance
	}

	var jobs []models.Job
	if err := s.DB.Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, err
	}
	if len(jobs) != len(ids) {
		return nil, ErrNotFound("Some jobs were not found in the database")
	}

	result := make([]JobWithDistance, 0, len(jobs))
	for _, job := range jobs {
		result = append(result, JobWithDistance{Job: job, Distance: distances[job.ID]})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Distance < result[j].Distance })
	return result, nil
}

func (s *JobService) All() ([]models.Job, error) {
	var jobs []models.Job
	if err := s.DB.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) ByID(id uint) (*models.Job, error) {
	var job models.Job
	if err := s.DB.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Job not found")
		}
		return nil, err
	}
	return &job, nil
}

func (s *JobService) Update(id uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.ByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ExperienceYears != nil {
		updates["experience_years"] = *req.ExperienceYears
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	if req.HRQuestions != nil {
		updates["hr_questions"] = *req.HRQuestions
	}

	if len(updates) > 0 {
		if err := s.DB.Model(job).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return job, nil
}

// Delete removes the job from the database and from the external
// matching index.
func (s *JobService) Delete(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.DB.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Job not found in database")
		}
		return nil, err
	}

	if err := s.DB.Delete(&job).Error; err != nil {
		return nil, err
	}

	if err := s.Vector.DeleteJob(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete job from external API: %w", err)
	}
	return &job, nil
}

func (s *JobService) ByCreator(userID uint) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.DB.Where("created_by = ?", userID).Find(&jobs).Error; err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, ErrNotFound("No jobs found for this user")
	}
	return jobs, nil
}

// SetUserStatus moves a user between the job's status arrays. The user
// is removed from every array first, so no id can end up in two lists.
func (s *JobService) SetUserStatus(jobID uint, req *dtos.UserStatusRequest) (*models.Job, error) {
	job, err := s.ByID(jobID)
	if err != nil {
		return nil, err
	}

	userID := req.UserID
	job.AcceptedUsers = removeID(job.AcceptedUsers, userID)
	job.RejectedUsers = removeID(job.RejectedUsers, userID)
	job.AppliedUsers = removeID(job.AppliedUsers, userID)
	job.SelectedUsers = removeID(job.SelectedUsers, userID)

	switch {
	case req.AcceptedUsers:
		job.AcceptedUsers = append(job.AcceptedUsers, userID)
	case req.RejectedUsers:
		job.RejectedUsers = append(job.RejectedUsers, userID)
	case req.AppliedUsers:
		job.AppliedUsers = append(job.AppliedUsers, userID)
	case req.SelectedUsers:
		job.SelectedUsers = append(job.SelectedUsers, userID)

		notification := models.Notification{
			UserID:  userID,
			Message: "You are selected for this job. Please upload a video for the HR interview.",
			Link:    fmt.Sprintf("%s/jobs/%d", s.PublicBaseURL, jobID),
		}
		if err := s.DB.Create(&notification).Error; err != nil {
			return nil, err
		}
	}

	if err := s.DB.Save(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func containsID(list datatypes.JSONSlice[uint], id uint) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(list datatypes.JSONSlice[uint], id uint) datatypes.JSONSlice[uint] {
	out := make(datatypes.JSONSlice[uint], 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
