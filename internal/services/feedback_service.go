package services

import (
	"gorm.io/gorm"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/models"
)

type FeedbackService struct {
	DB *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{DB: db}
}

func (s *FeedbackService) Add(req *dtos.FeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalid("Rating must be between 1 and 5")
	}

	feedback := &models.Feedback{
		UserID:       req.UserID,
		FeedbackText: req.FeedbackText,
		Rating:       req.Rating,
	}
	if err := s.DB.Create(feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

// FeedbackWithUser joins each feedback with its author's identity.
type FeedbackWithUser struct {
	models.Feedback
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (s *FeedbackService) ForUser(userID uint) ([]FeedbackWithUser, error) {
	var feedbacks []models.Feedback
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return s.withUsers(feedbacks)
}

func (s *FeedbackService) All() ([]FeedbackWithUser, error) {
	var feedbacks []models.Feedback
	if err := s.DB.Order("created_at DESC").Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return s.withUsers(feedbacks)
}

func (s *FeedbackService) withUsers(feedbacks []models.Feedback) ([]FeedbackWithUser, error) {
	ids := make([]uint, 0, len(feedbacks))
	for _, f := range feedbacks {
		ids = append(ids, f.UserID)
	}

	byID := make(map[uint]models.User, len(ids))
	if len(ids) > 0 {
		var users []models.User
		if err := s.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			byID[u.ID] = u
		}
	}

	out := make([]FeedbackWithUser, 0, len(feedbacks))
	for _, f := range feedbacks {
		u := byID[f.UserID]
		out = append(out, FeedbackWithUser{Feedback: f, FullName: u.FullName, Email: u.Email})
	}
	return out, nil
}
