package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jobvista/backend/internal/auth"
	"github.com/jobvista/backend/internal/dtos"
	"github.com/jobvista/backend/internal/models"
)

type UserService struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewUserService(db *gorm.DB, jwtSecret string) *UserService {
	return &UserService{DB: db, JWTSecret: jwtSecret}
}

func (s *UserService) Register(req *dtos.RegisterRequest) error {
	var existing models.User
	err := s.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return ErrInvalid("An account already exists with this email")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hash),
		RoleType: req.RoleType,
	}
	return s.DB.Create(user).Error
}

// Login checks the credentials and issues a bearer token.
func (s *UserService) Login(req *dtos.LoginRequest) (string, *models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalid("Invalid email")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalid("Password is invalid")
	}

	token, err := auth.IssueToken(s.JWTSecret, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *UserService) SetImage(userID uint, url string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("User not found")
		}
		return nil, err
	}
	if err := s.DB.Model(&user).Update("user_img_url", url).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ApplyJob records an application on both the job and the user. A
// resume must exist first.
func (s *UserService) ApplyJob(userID, jobID uint) (*models.User, *models.Job, error) {
	var resume models.Resume
	if err := s.DB.Where("user_id = ?", userID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalid("You need to create a resume before applying for jobs")
		}
		return nil, nil, err
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound("User not found")
		}
		return nil, nil, err
	}

	var job models.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound("Job not found")
		}
		return nil, nil, err
	}

	if containsID(job.AppliedUsers, userID) {
		return nil, nil, ErrInvalid("You have already applied for this job")
	}

	job.AppliedUsers = append(job.AppliedUsers, userID)
	if !containsID(user.AppliedJobIDs, jobID) {
		user.AppliedJobIDs = append(user.AppliedJobIDs, jobID)
	}

	if err := s.DB.Save(&job).Error; err != nil {
		return nil, nil, err
	}
	if err := s.DB.Save(&user).Error; err != nil {
		return nil, nil, err
	}
	return &user, &job, nil
}

func (s *UserService) AppliedJobs(userID uint) ([]models.Job, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("User not found")
		}
		return nil, err
	}

	if len(user.AppliedJobIDs) == 0 {
		return []models.Job{}, nil
	}

	var jobs []models.Job
	if err := s.DB.Where("id IN ?", []uint(user.AppliedJobIDs)).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
