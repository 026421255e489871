package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"NewsAnalyzer/internal/config"
	"NewsAnalyzer/internal/ports"
)

// OpenAIClient implements ports.ChatClient against OpenAI-compatible chat completion APIs.
type OpenAIClient struct {
	client openai.Client
	model  string
}

var _ ports.ChatClient = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from configuration. The project identifier is sent
// with every request; SDK retries are disabled so a failure surfaces immediately.
func NewOpenAIClient(cfg config.CompletionConfig, opts ...option.RequestOption) *OpenAIClient {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.ProjectID != "" {
		base = append(base, option.WithProject(cfg.ProjectID))
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}

	return &OpenAIClient{
		client: openai.NewClient(append(base, opts...)...),
		model:  model,
	}
}

// Complete sends one user message and returns the first choice, trimmed.
func (c *OpenAIClient) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("no response from openai")
	}
	return text, nil
}
