package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPercentage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100.0, MatchPercentage(0))
	assert.Equal(t, 66.67, MatchPercentage(0.5))
	assert.Equal(t, 50.0, MatchPercentage(1))
	assert.Equal(t, 25.0, MatchPercentage(3))
}

func TestVectorClientSearchResumes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/recruitment-project/vectorsearch/resumes/search/", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "golang backend", payload["query_text"])
		assert.EqualValues(t, 5, payload["n_results"])

		json.NewEncoder(w).Encode([]VectorMatch{
			{ID: "1", Text: "Go developer", Distance: 0.1},
			{ID: "2", Text: "Java developer", Distance: 0.8},
		})
	}))
	defer srv.Close()

	client := NewVectorClient(srv.URL)
	matches, err := client.SearchResumes(context.Background(), "golang backend", 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "1", matches[0].ID)
	assert.Equal(t, 0.1, matches[0].Distance)
}

func TestVectorClientIndexAndDeleteJob(t *testing.T) {
	t.Parallel()

	var gotIndex, gotDelete bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/recruitment-project/vectorsearch/jobs/":
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "7", payload["job_id"])
			assert.Equal(t, "Backend Engineer", payload["job_text"])
			gotIndex = true
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodDelete && r.URL.Path == "/recruitment-project/vectorsearch/jobs/7":
			gotDelete = true
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewVectorClient(srv.URL)
	require.NoError(t, client.IndexJob(context.Background(), 7, "Backend Engineer"))
	require.NoError(t, client.DeleteJob(context.Background(), 7))
	assert.True(t, gotIndex)
	assert.True(t, gotDelete)
}

func TestVectorClientNon200(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewVectorClient(srv.URL)
	err := client.IndexResume(context.Background(), 1, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
