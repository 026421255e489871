package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"NewsAnalyzer/internal/config"
	"NewsAnalyzer/internal/ports"
)

const (
	defaultAnthropicModel     = "claude-haiku-4-5"
	defaultAnthropicMaxTokens = 1024
)

// AnthropicClient implements ports.ChatClient with the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  string
}

var _ ports.ChatClient = (*AnthropicClient)(nil)

// NewAnthropicClient builds a client from configuration with SDK retries disabled.
func NewAnthropicClient(cfg config.CompletionConfig, opts ...option.RequestOption) *AnthropicClient {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	return &AnthropicClient{
		client: anthropic.NewClient(append(base, opts...)...),
		model:  model,
	}
}

// Complete sends one user message and joins the text blocks of the reply.
func (c *AnthropicClient) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no response from anthropic")
	}
	return text, nil
}
