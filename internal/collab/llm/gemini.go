package llm

import (
	"context"

	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// GeminiClient uses the Google GenAI SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates the SDK client. An empty apiKey yields (nil, nil).
// baseURL is optional and points the SDK at another Gemini API endpoint.
func NewGeminiClient(ctx context.Context, apiKey, modelName, baseURL string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, nil
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}
	return &GeminiClient{client: client, model: modelName}, nil
}

// ClassifyOrExtract implements Understander.
func (g *GeminiClient) ClassifyOrExtract(ctx context.Context, text string, task Task) (string, error) {
	instr := Instruction(task)
	if instr == "" {
		return "", errors.Errorf("unknown task %q", task)
	}
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instr, genai.RoleUser),
		},
	)
	if err != nil {
		return "", errors.Wrapf(model.ErrCollaboratorUnavailable, "gemini: %v", err)
	}
	return CleanAnswer(result.Text()), nil
}
