package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"jd-backend/internal/llm"
)

// Client implements llm.Provider against the hosted Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a hosted Gemini provider.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Name identifies this provider in source tags and logs.
func (c *Client) Name() string { return "hosted" }

// Analyze sends the mode-specific prompt and returns the raw reply text.
func (c *Client) Analyze(ctx context.Context, jdText string, mode string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	// Low temperature favors structural compliance over creativity.
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(llm.Prompt(mode, jdText)))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	return textFromResponse(resp)
}

// Close releases resources held by the underlying client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", llm.ErrEmptyResponse
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", llm.ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	content := strings.TrimSpace(b.String())
	if content == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

var _ llm.Provider = (*Client)(nil)
