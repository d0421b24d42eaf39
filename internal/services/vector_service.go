package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"
)

// VectorMatch is one hit from the external vector-search service.
// Lower distance means a better match.
type VectorMatch struct {
	ID       string  `json:"id"`
	Text     string  `json:"text,omitempty"`
	Distance float64 `json:"distance"`
}

// VectorClient talks to the external matching service that indexes job
// and resume text. All ranking happens on the other side; this is a
// pass-through client.
type VectorClient struct {
	baseURL string
	client  *http.Client
}

func NewVectorClient(baseURL string) *VectorClient {
	return &VectorClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// MatchPercentage converts a distance into the percentage shown to
// users: 100 * 1/(1+distance), with a perfect match capped at 100.
func MatchPercentage(distance float64) float64 {
	if distance == 0 {
		return 100.0
	}
	p := 100 * (1 / (1 + distance))
	return math.Round(p*100) / 100
}

func (c *VectorClient) IndexJob(ctx context.Context, jobID uint, text string) error {
	payload := map[string]string{
		"job_id":   strconv.FormatUint(uint64(jobID), 10),
		"job_text": text,
	}
	return c.post(ctx, "/recruitment-project/vectorsearch/jobs/", payload, nil)
}

func (c *VectorClient) DeleteJob(ctx context.Context, jobID uint) error {
	return c.delete(ctx, fmt.Sprintf("/recruitment-project/vectorsearch/jobs/%d", jobID))
}

func (c *VectorClient) SearchJobs(ctx context.Context, query string, n int) ([]VectorMatch, error) {
	payload := map[string]interface{}{
		"query_text": query,
		"n_results":  n,
	}
	var matches []VectorMatch
	if err := c.post(ctx, "/recruitment-project/vectorsearch/jobs/search/", payload, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *VectorClient) IndexResume(ctx context.Context, userID uint, text string) error {
	payload := map[string]string{
		"resume_id":   strconv.FormatUint(uint64(userID), 10),
		"resume_text": text,
	}
	return c.post(ctx, "/recruitment-project/vectorsearch/resumes/", payload, nil)
}

func (c *VectorClient) DeleteResume(ctx context.Context, userID uint) error {
	return c.delete(ctx, fmt.Sprintf("/recruitment-project/vectorsearch/resumes/%d", userID))
}

func (c *VectorClient) SearchResumes(ctx context.Context, query string, n int) ([]VectorMatch, error) {
	payload := map[string]interface{}{
		"query_text": query,
		"n_results":  n,
	}
	var matches []VectorMatch
	if err := c.post(ctx, "/recruitment-project/vectorsearch/resumes/search/", payload, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *VectorClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
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

func (c *VectorClient) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *VectorClient) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vector service returned status %d for %s", resp.StatusCode, req.URL.Path)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
