package queue

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jobvista/backend/internal/models"
)

// Predictor is the slice of the prediction client the worker needs.
type Predictor interface {
	PredictPersonality(ctx context.Context, sentence string) (map[string]interface{}, error)
	PredictEmotion(ctx context.Context, videoURL string) (map[string]float64, error)
}

// Worker executes prediction tasks and patches the owning records.
// Failures are recorded in the prediction_status column so callers can
// observe them; nothing is ever surfaced to the request that enqueued
// the task.
type Worker struct {
	db        *gorm.DB
	predictor Predictor
}

func NewWorker(db *gorm.DB, predictor Predictor) *Worker {
	return &Worker{db: db, predictor: predictor}
}

// Handle dispatches a single task. Exported so tests can drive the
// worker without a broker.
func (w *Worker) Handle(task Task) {
	switch task.Type {
	case TaskPersonalityPrediction:
		w.handlePersonality(task)
	case TaskEmotionAnalysis:
		w.handleEmotion(task)
	default:
		log.Warn("unknown task type: ", task.Type)
	}
}

func (w *Worker) handlePersonality(task Task) {
	logger := log.WithFields(log.Fields{"task": task.Type, "employeeDetailsId": task.EmployeeDetailsID})

	w.setPredictionStatus(task.EmployeeDetailsID, models.PredictionProcessing)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	level, err := w.predictor.PredictPersonality(ctx, task.Sentence)
	if err != nil {
		logger.WithError(err).Error("personality prediction failed")
		w.setPredictionStatus(task.EmployeeDetailsID, models.PredictionFailed)
		return
	}

	err = w.db.Model(&models.EmployeeDetails{}).
		Where("id = ?", task.EmployeeDetailsID).
		Updates(map[string]interface{}{
			"employee_personality_level": datatypes.JSONMap(level),
			"prediction_status":          models.PredictionCompleted,
		}).Error
	if err != nil {
		logger.WithError(err).Error("failed to store personality level")
		return
	}
	logger.Info("personality level updated")
}

func (w *Worker) handleEmotion(task Task) {
	logger := log.WithFields(log.Fields{"task": task.Type, "resumeId": task.ResumeID, "jobId": task.JobID})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	levels, err := w.predictor.PredictEmotion(ctx, task.VideoURL)
	if err != nil {
		logger.WithError(err).Error("emotion prediction failed")
		return
	}

	var resume models.Resume
	if err := w.db.First(&resume, task.ResumeID).Error; err != nil {
		logger.WithError(err).Error("resume not found for emotion result")
		return
	}

	updated := false
	for i := range resume.EmotionLevels {
		if resume.EmotionLevels[i].JobID == task.JobID {
			resume.EmotionLevels[i].Levels = levels
			updated = true
			break
		}
	}
	if !updated {
		resume.EmotionLevels = append(resume.EmotionLevels, models.EmotionLevel{JobID: task.JobID, Levels: levels})
	}

	if err := w.db.Model(&resume).Update("emotion_levels", resume.EmotionLevels).Error; err != nil {
		logger.WithError(err).Error("failed to store emotion level")
		return
	}
	logger.Info("emotion level updated")
}

func (w *Worker) setPredictionStatus(id uint, status string) {
	if err := w.db.Model(&models.EmployeeDetails{}).
		Where("id = ?", id).
		Update("prediction_status", status).Error; err != nil {
		log.WithError(err).Error("failed to update prediction status")
	}
}
