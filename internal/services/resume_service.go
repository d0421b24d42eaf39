package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jobvista/backend/internal/models"
	"github.com/jobvista/backend/internal/queue"
)

// ResumeVectorIndex is the resume-side slice of the vector client.
type ResumeVectorIndex interface {
	IndexResume(ctx context.Context, userID uint, text string) error
	DeleteResume(ctx context.Context, userID uint) error
	SearchResumes(ctx context.Context, query string, n int) ([]VectorMatch, error)
}

// ResumePredictor is the slice of the prediction client used here.
type ResumePredictor interface {
	ExtractText(ctx context.Context, filename string, file io.Reader) ([]models.ResumePage, error)
	PredictPersonality(ctx context.Context, sentence string) (map[string]interface{}, error)
}

type ResumeService struct {
	DB      *gorm.DB
	Vector  ResumeVectorIndex
	Predict ResumePredictor
	Queue   queue.Publisher
}

func NewResumeService(db *gorm.DB, vector ResumeVectorIndex, predict ResumePredictor, q queue.Publisher) *ResumeService {
	return &ResumeService{DB: db, Vector: vector, Predict: predict, Queue: q}
}

// CreateFromPDF runs the uploaded file through the OCR service, upserts
// the user's resume and reindexes it for matching.
func (s *ResumeService) CreateFromPDF(ctx context.Context, userID uint, filename string, file io.Reader, cvLink string, experienceYears *float64) (*models.Resume, error) {
	pages, err := s.Predict.ExtractText(ctx, filename, file)
	if err != nil {
		return nil, err
	}
	return s.upsert(ctx, userID, pages, cvLink, experienceYears)
}

// CreateFromText builds the resume from pre-extracted text instead of a file.
func (s *ResumeService) CreateFromText(ctx context.Context, userID uint, content string, experienceYears *float64) (*models.Resume, error) {
	pages := []models.ResumePage{{PageNumber: 1, Content: content}}
	return s.upsert(ctx, userID, pages, "", experienceYears)
}

func (s *ResumeService) upsert(ctx context.Context, userID uint, pages []models.ResumePage, cvLink string, experienceYears *float64) (*models.Resume, error) {
	var resume models.Resume
	err := s.DB.Where("user_id = ?", userID).First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resume = models.Resume{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	resume.OCRContent = pages
	if cvLink != "" {
		resume.CVLink = cvLink
	}
	if experienceYears != nil {
		resume.ExperienceYears = *experienceYears
	}

	if err := s.DB.Save(&resume).Error; err != nil {
		return nil, err
	}

	// Reindex: drop the stale vector first so the search side never
	// holds two entries for one user.
	if err := s.Vector.DeleteResume(ctx, userID); err != nil {
		return nil, fmt.Errorf("delete stale resume vector: %w", err)
	}
	if err := s.Vector.IndexResume(ctx, userID, resume.FullText()); err != nil {
		return nil, err
	}
	return &resume, nil
}

// ResumeWithDistance is a stored resume joined with its search hit.
type ResumeWithDistance struct {
	models.Resume
	Distance float64 `json:"distance"`
	Text     string  `json:"text"`
}

// SearchResult carries the hits plus the ids the vector index knew
// about but the database did not.
type SearchResult struct {
	Message    string               `json:"message"`
	Resumes    []ResumeWithDistance `json:"resumes"`
	MissingIDs []string             `json:"missingIds"`
}

func (s *ResumeService) Search(ctx context.Context, query string, n int) (*SearchResult, error) {
	matches, err := s.Vector.SearchResumes(ctx, query, n)
	if err != nil {
		return nil, err
	}

	byUser := make(map[uint]VectorMatch, len(matches))
	ids := make([]uint, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.ParseUint(m.ID, 10, 64)
		if err != nil {
			continue
		}
		byUser[uint(id)] = m
		ids = append(ids, uint(id))
	}

	var resumes []models.Resume
	if len(ids) > 0 {
		if err := s.DB.Where("user_id IN ?", ids).Find(&resumes).Error; err != nil {
			return nil, err
		}
	}

	found := make(map[uint]bool, len(resumes))
	result := make([]ResumeWithDistance, 0, len(resumes))
	for _, r := range resumes {
		m := byUser[r.UserID]
		found[r.UserID] = true
		result = append(result, ResumeWithDistance{Resume: r, Distance: m.Distance, Text: m.Text})
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, strconv.FormatUint(uint64(id), 10))
		}
	}

	msg := "Resumes fetched successfully"
	if len(missing) > 0 {
		log.Warn("missing resumes for user ids: ", missing)
		msg = "Some resumes were not found in the database"
	}
	return &SearchResult{Message: msg, Resumes: result, MissingIDs: missing}, nil
}

// RecommendedResume is a search hit enriched with everything a
// recruiter sees on the recommendation screen. Enrichment is best
// effort per hit; a missing record leaves the fields null.
type RecommendedResume struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
	Text     string  `json:"text,omitempty"`

	FullName                 *string                                  `json:"fullname"`
	CVLink                   *string                                  `json:"cvLink"`
	VideoLinks               datatypes.JSONSlice[models.VideoLink]    `json:"videoLinks"`
	EmotionLevels            datatypes.JSONSlice[models.EmotionLevel] `json:"emotionLevels"`
	PersonalityLevel         datatypes.JSONMap                        `json:"personalityLevel"`
	ExperienceYears          *float64                                 `json:"experienceYears"`
	EmployeePersonalityLevel datatypes.JSONMap                        `json:"employeePersonalityLevel"`
}

func (s *ResumeService) Recommend(ctx context.Context, query string) ([]RecommendedResume, error) {
	matches, err := s.Vector.SearchResumes(ctx, query, 10)
	if err != nil {
		return nil, err
	}

	results := make([]RecommendedResume, 0, len(matches))
	for _, m := range matches {
		entry := RecommendedResume{ID: m.ID, Distance: m.Distance, Text: m.Text}

		userID, err := strconv.ParseUint(m.ID, 10, 64)
		if err != nil {
			results = append(results, entry)
			continue
		}

		var resume models.Resume
		if err := s.DB.Where("user_id = ?", uint(userID)).First(&resume).Error; err != nil {
			results = append(results, entry)
			continue
		}

		var user models.User
		if err := s.DB.First(&user, resume.UserID).Error; err != nil {
			results = append(results, entry)
			continue
		}

		entry.FullName = &user.FullName
		if resume.CVLink != "" {
			entry.CVLink = &resume.CVLink
		}
		entry.VideoLinks = resume.VideoLinks
		entry.EmotionLevels = resume.EmotionLevels
		entry.PersonalityLevel = resume.PersonalityLevel
		if resume.ExperienceYears != 0 {
			entry.ExperienceYears = &resume.ExperienceYears
		}

		var details models.EmployeeDetails
		if err := s.DB.Where("user_id = ?", resume.UserID).First(&details).Error; err == nil {
			entry.EmployeePersonalityLevel = details.EmployeePersonalityLevel
		}

		results = append(results, entry)
	}
	return results, nil
}

// AddVideo attaches (or replaces) the interview video for a job and
// queues the emotion analysis of it.
func (s *ResumeService) AddVideo(userID, jobID uint, link string) (*models.Resume, error) {
	var resume models.Resume
	if err := s.DB.Where("user_id = ?", userID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Resume not found")
		}
		return nil, err
	}

	updated := false
	for i := range resume.VideoLinks {
		if resume.VideoLinks[i].JobID == jobID {
			resume.VideoLinks[i].Link = link
			updated = true
			break
		}
	}
	if !updated {
		resume.VideoLinks = append(resume.VideoLinks, models.VideoLink{JobID: jobID, Link: link})
	}

	if err := s.DB.Save(&resume).Error; err != nil {
		return nil, err
	}

	task := queue.Task{
		Type:     queue.TaskEmotionAnalysis,
		ResumeID: resume.ID,
		JobID:    jobID,
		VideoURL: link,
	}
	if err := s.Queue.Publish(task); err != nil {
		log.WithError(err).WithField("resumeId", resume.ID).Error("failed to enqueue emotion analysis")
	}
	return &resume, nil
}

// UpdatePersonalityText runs the prediction synchronously; the caller
// waits for the trait levels.
func (s *ResumeService) UpdatePersonalityText(ctx context.Context, userID uint, text string) (*models.Resume, error) {
	var resume models.Resume
	if err := s.DB.Where("user_id = ?", userID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Resume not found for the given userId.")
		}
		return nil, err
	}

	level, err := s.Predict.PredictPersonality(ctx, text)
	if err != nil {
		return nil, err
	}

	resume.PersonalityText = text
	resume.PersonalityLevel = level
	if err := s.DB.Save(&resume).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *ResumeService) OCRContent(userID uint) (datatypes.JSONSlice[models.ResumePage], error) {
	var resume models.Resume
	if err := s.DB.Where("user_id = ?", userID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Resume not found for the specified user")
		}
		return nil, err
	}
	return resume.OCRContent, nil
}

// ResumeDetails is a resume joined with its owner's identity.
type ResumeDetails struct {
	models.Resume
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (s *ResumeService) Details(userID uint) ([]ResumeDetails, error) {
	var resumes []models.Resume
	if err := s.DB.Where("user_id = ?", userID).Find(&resumes).Error; err != nil {
		return nil, err
	}
	if len(resumes) == 0 {
		return nil, ErrNotFound("No resumes found for this user")
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	details := make([]ResumeDetails, 0, len(resumes))
	for _, r := range resumes {
		details = append(details, ResumeDetails{Resume: r, FullName: user.FullName, Email: user.Email})
	}
	return details, nil
}

// Applicant is one entry in the recruiter's applicant overview.
type Applicant struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CVLink    string `json:"cvLink"`
	Emotion   string `json:"emotion"`
	VideoLink string `json:"videoLink"`
}

// JobApplicants groups a job's users by hiring state, each enriched
// with the per-job video and emotion data from their resume.
type JobApplicants struct {
	JobDetails    *models.Job `json:"jobDetails"`
	SelectedUsers []Applicant `json:"selectedUsers"`
	RejectedUsers []Applicant `json:"rejectedUsers"`
	AcceptedUsers []Applicant `json:"acceptedUsers"`
}

func (s *ResumeService) Applicants(jobID uint) (*JobApplicants, error) {
	var job models.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Job not found")
		}
		return nil, err
	}

	return &JobApplicants{
		JobDetails:    &job,
		SelectedUsers: s.applicantGroup(job.SelectedUsers, jobID),
		RejectedUsers: s.applicantGroup(job.RejectedUsers, jobID),
		AcceptedUsers: s.applicantGroup(job.AcceptedUsers, jobID),
	}, nil
}

func (s *ResumeService) applicantGroup(userIDs []uint, jobID uint) []Applicant {
	applicants := make([]Applicant, 0, len(userIDs))
	if len(userIDs) == 0 {
		return applicants
	}

	var users []models.User
	if err := s.DB.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		log.WithError(err).Error("failed to load applicant users")
		return applicants
	}

	var resumes []models.Resume
	if err := s.DB.Where("user_id IN ?", userIDs).Find(&resumes).Error; err != nil {
		log.WithError(err).Error("failed to load applicant resumes")
	}
	byUser := make(map[uint]models.Resume, len(resumes))
	for _, r := range resumes {
		byUser[r.UserID] = r
	}

	for _, u := range users {
		a := Applicant{ID: u.ID, Name: u.FullName, CVLink: "#", Emotion: "N/A", VideoLink: "#"}
		if resume, ok := byUser[u.ID]; ok {
			if resume.CVLink != "" {
				a.CVLink = resume.CVLink
			}
			for _, v := range resume.VideoLinks {
				if v.JobID == jobID && v.Link != "" {
					a.VideoLink = v.Link
					break
				}
			}
			for _, e := range resume.EmotionLevels {
				if e.JobID == jobID && len(e.Levels) > 0 {
					a.Emotion = formatEmotion(e.Levels)
					break
				}
			}
		}
		applicants = append(applicants, a)
	}
	return applicants
}

func formatEmotion(levels map[string]float64) string {
	b, err := json.Marshal(levels)
	if err != nil {
		return "N/A"
	}
	return string(b)
}
