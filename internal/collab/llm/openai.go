package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client *resty.Client
	model  string
}

// NewOpenAIClient returns nil when apiKey is empty so callers can treat the
// collaborator as absent.
func NewOpenAIClient(baseURL, apiKey, modelName string, timeout time.Duration) *OpenAIClient {
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(apiKey).
		SetTimeout(timeout)
	return &OpenAIClient{client: c, model: modelName}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ClassifyOrExtract implements Understander.
func (c *OpenAIClient) ClassifyOrExtract(ctx context.Context, text string, task Task) (string, error) {
	instr := Instruction(task)
	if instr == "" {
		return "", errors.Errorf("unknown task %q", task)
	}
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: instr},
			{Role: "user", Content: text},
		},
		MaxTokens: 20,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&req).
		Post("/chat/completions")
	if err != nil {
		return "", errors.Wrap(model.ErrCollaboratorUnavailable, err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		return "", errors.Wrapf(model.ErrCollaboratorUnavailable, "openai status %d", resp.StatusCode())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", errors.Wrap(err, "decode chat response")
	}
	if len(cr.Choices) == 0 {
		return "", errors.Wrap(model.ErrCollaboratorUnavailable, "openai returned no choices")
	}
	return CleanAnswer(cr.Choices[0].Message.Content), nil
}
