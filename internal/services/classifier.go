package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"friendsnap-backend/internal/models"
)

const classifierPrompt = `You are an image analyzer for a photo-sharing app for adults with intellectual disabilities.
1. Check if the image contains any people (faces, bodies, or identifiable human features). Famous people/celebrities are allowed.
2. Identify the main subject/category of the image.
3. Extract relevant tags for matching users with similar interests.

Respond in JSON format:
{
  "contains_people": true/false,
  "is_famous_person": true/false,
  "category": "one of: animals, nature, food, sports, music, art, colors, objects, places, other",
  "tags": ["tag1", "tag2", "tag3"],
  "description": "brief description in simple language"
}`

// HTTPClassifier analyses images through an OpenAI-compatible vision
// endpoint. All failures are reported as ErrClassifierUnavailable so the
// upload path can fall back to the safe default.
type HTTPClassifier struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewHTTPClassifier creates a new classifier client
func NewHTTPClassifier(endpoint, apiKey, model string) *HTTPClassifier {
	return &HTTPClassifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content,omitempty"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Classify sends the image to the vision endpoint and parses its JSON
// verdict.
func (c *HTTPClassifier) Classify(ctx context.Context, imageBase64 string) (*models.ModerationResult, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []chatContent{
					{Type: "text", Text: classifierPrompt},
					{Type: "image_url", ImageURL: &chatImageURL{
						URL: "data:image/jpeg;base64," + imageBase64,
					}},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrClassifierUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrClassifierUnavailable)
	}

	result, err := parseVerdict(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	return result, nil
}

// parseVerdict extracts the JSON verdict, tolerating markdown code fences
// around it.
func parseVerdict(content string) (*models.ModerationResult, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.Index(content, "```"); idx >= 0 {
			content = content[:idx]
		}
	}

	var result models.ModerationResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
