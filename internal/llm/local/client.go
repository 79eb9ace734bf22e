package local

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"jd-backend/internal/llm"
)

// Client implements llm.Provider against an OpenAI-compatible chat
// completions endpoint (LM Studio, llama.cpp server, Ollama, ...).
type Client struct {
	client *openai.Client
	model  string
}

// NewClient constructs a local provider for the given base URL, e.g.
// http://127.0.0.1:1234/v1.
func NewClient(baseURL, model string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("LOCAL_LLM_BASE_URL is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LOCAL_LLM_MODEL is required")
	}
	// Local servers usually don't check the key, but the SDK requires one.
	cfg := openai.DefaultConfig("not-needed")
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Name identifies this provider in source tags and logs.
func (c *Client) Name() string { return "local" }

// Analyze sends the mode-specific prompt and returns the raw reply text.
func (c *Client) Analyze(ctx context.Context, jdText string, mode string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llm.SystemPrompt(mode)},
			{Role: openai.ChatMessageRoleUser, Content: llm.UserPrompt(jdText)},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("local llm request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

var _ llm.Provider = (*Client)(nil)
