package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/jobvista/backend/internal/models"
)

// PredictClient wraps the external prediction endpoints: resume OCR,
// personality prediction from free text, emotion analysis of interview
// videos and quiz question generation.
type PredictClient struct {
	baseURL string
	client  *http.Client
}

func NewPredictClient(baseURL string) *PredictClient {
	return &PredictClient{
		baseURL: baseURL,
		// OCR and emotion runs are slow on the other side.
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

// ExtractText sends a resume file to the OCR endpoint and returns the
// extracted pages.
func (c *PredictClient) ExtractText(ctx context.Context, filename string, file io.Reader) ([]models.ResumePage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/recruitment-project/pdfreader/ocr_only", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out struct {
		Content []models.ResumePage `json:"content"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Content, nil
}

// PredictPersonality classifies a free-text self description into
// personality trait levels.
func (c *PredictClient) PredictPersonality(ctx context.Context, sentence string) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.post(ctx, "/recruitment-project/personality/predict-personality",
		map[string]string{"sentence": sentence}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PredictEmotion analyses an uploaded interview video by URL.
func (c *PredictClient) PredictEmotion(ctx context.Context, videoURL string) (map[string]float64, error) {
	var out map[string]float64
	err := c.post(ctx, "/recruitment-project/emotion/predict-emotion",
		map[string]string{"s3_link": videoURL}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetQuestions generates quiz questions for a topic at the difficulty
// implied by the user's learning type.
func (c *PredictClient) GetQuestions(ctx context.Context, topic, difficulty string) ([]models.QuizQuestion, error) {
	var out []models.QuizQuestion
	err := c.post(ctx, "/recruitment-project/questions/get-questions",
		map[string]string{"topic": topic, "difficulty_level": difficulty}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PredictClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *PredictClient) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("prediction service returned status %d for %s", resp.StatusCode, req.URL.Path)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
