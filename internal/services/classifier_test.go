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

func classifierServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func TestClassifyParsesVerdict(t *testing.T) {
	srv := classifierServer(t, http.StatusOK,
		`{"contains_people": false, "category": "nature", "tags": ["sunset"], "description": "A sunset"}`)
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "test-key", "test-model")
	result, err := c.Classify(context.Background(), "aW1hZ2U=")
	require.NoError(t, err)

	assert.False(t, result.ContainsPeople)
	assert.Equal(t, "nature", result.Category)
	assert.Equal(t, []string{"sunset"}, result.Tags)
}

func TestClassifyToleratesCodeFences(t *testing.T) {
	srv := classifierServer(t, http.StatusOK,
		"```json\n{\"contains_people\": true, \"is_famous_person\": true, \"category\": \"music\", \"tags\": []}\n```")
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "test-key", "test-model")
	result, err := c.Classify(context.Background(), "aW1hZ2U=")
	require.NoError(t, err)

	assert.True(t, result.ContainsPeople)
	assert.True(t, result.IsFamousPerson)
	assert.Equal(t, "music", result.Category)
}

func TestClassifyEndpointFailure(t *testing.T) {
	srv := classifierServer(t, http.StatusBadGateway, "")
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "test-key", "test-model")
	_, err := c.Classify(context.Background(), "aW1hZ2U=")
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
}

func TestClassifyGarbageVerdict(t *testing.T) {
	srv := classifierServer(t, http.StatusOK, "sorry, I cannot help with that")
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "test-key", "test-model")
	_, err := c.Classify(context.Background(), "aW1hZ2U=")
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
}
