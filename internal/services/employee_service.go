package services

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/models"
	"github.com/jobvista/backend/internal/queue"
)

type EmployeeService struct {
	DB    *gorm.DB
	Email *EmailService
	Queue queue.Publisher
}

func NewEmployeeService(db *gorm.DB, email *EmailService, q queue.Publisher) *EmployeeService {
	return &EmployeeService{DB: db, Email: email, Queue: q}
}

// Add creates the one-per-user employee details record and emails the
// company contact. The mail is best effort: a send failure is logged
// and the saved record stays.
func (s *EmployeeService) Add(ctx context.Context, req *dtos.EmployeeDetailsRequest) (*models.EmployeeDetails, error) {
	var user models.User
	if err := s.DB.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("User not found.")
		}
		return nil, err
	}

	var existing models.EmployeeDetails
	err := s.DB.Where("user_id = ?", req.UserID).First(&existing).Error
	if err == nil {
		return nil, ErrInvalid("You cannot add multiple forms.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	details := &models.EmployeeDetails{
		UserID:              req.UserID,
		CompanyName:         req.CompanyName,
		CompanyEmail:        req.CompanyEmail,
		RegistrationNumber:  req.RegistrationNumber,
		Position:            req.Position,
		EmploymentStartDate: req.EmploymentStartDate,
		EmploymentEndDate:   req.EmploymentEndDate,
		PredictionStatus:    models.PredictionPending,
	}
	if err := s.DB.Create(details).Error; err != nil {
		// The unique index on user_id closes the race the existence
		// check above leaves open.
		if isUniqueViolation(err) {
			return nil, ErrInvalid("You cannot add multiple forms.")
		}
		return nil, err
	}

	if err := s.Email.SendCompanyForm(ctx, req.CompanyEmail, req.UserID); err != nil {
		log.WithError(err).WithField("companyEmail", req.CompanyEmail).Error("failed to send company form email")
	}
	return details, nil
}

// UpdateQualities stores the employer's free-text assessment and queues
// the personality prediction. The caller gets its response before the
// prediction runs; progress is visible through prediction_status.
func (s *EmployeeService) UpdateQualities(req *dtos.EmployeeUpdateRequest) (*models.EmployeeDetails, error) {
	var details models.EmployeeDetails
	if err := s.DB.Where("user_id = ?", req.UserID).First(&details).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Employee details not found.")
		}
		return nil, err
	}

	details.EmployeeQualities = req.EmployeeQualities
	details.PredictionStatus = models.PredictionPending
	if err := s.DB.Save(&details).Error; err != nil {
		return nil, err
	}

	task := queue.Task{
		Type:              queue.TaskPersonalityPrediction,
		EmployeeDetailsID: details.ID,
		Sentence:          req.EmployeeQualities,
	}
	if err := s.Queue.Publish(task); err != nil {
		log.WithError(err).WithField("employeeDetailsId", details.ID).Error("failed to enqueue personality prediction")
	}
	return &details, nil
}

// DetailsWithName joins the record with the user's display name.
type DetailsWithName struct {
	models.EmployeeDetails
	FullName string `json:"fullName"`
}

func (s *EmployeeService) Get(userID uint) (*DetailsWithName, error) {
	var details models.EmployeeDetails
	if err := s.DB.Where("user_id = ?", userID).First(&details).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("No employee details found for this user.")
		}
		return nil, err
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &DetailsWithName{EmployeeDetails: details, FullName: user.FullName}, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
