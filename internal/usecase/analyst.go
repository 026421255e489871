package usecase

import (
	"context"
	"errors"
	"fmt"

	"NewsAnalyzer/internal/domain"
	"NewsAnalyzer/internal/ports"
	"NewsAnalyzer/internal/prompt"
)

// Analyst implements ports.Summarizer and ports.Aggregator with one completion
// request per call and fixed generation parameters.
type Analyst struct {
	chat        ports.ChatClient
	template    prompt.Template
	temperature float64
	maxTokens   int64
}

var _ ports.Summarizer = (*Analyst)(nil)
var _ ports.Aggregator = (*Analyst)(nil)

// NewAnalyst wires a chat client with a prompt template. maxTokens <= 0 keeps the template's cap.
func NewAnalyst(chat ports.ChatClient, tpl prompt.Template, temperature float64, maxTokens int64) *Analyst {
	if maxTokens <= 0 {
		maxTokens = tpl.MaxTokens
	}
	return &Analyst{
		chat:        chat,
		template:    tpl,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Summarize asks the model for the key financial points of one article.
func (a *Analyst) Summarize(ctx context.Context, content domain.ArticleContent) (string, error) {
	return a.complete(ctx, a.template.Summarize(content.Text))
}

// Aggregate asks the model for one narrative over the ordered summaries.
func (a *Analyst) Aggregate(ctx context.Context, company string, summaries []domain.Summary) (string, error) {
	if len(summaries) == 0 {
		return "", errors.New("no summaries to aggregate")
	}

	texts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		texts = append(texts, s.Text)
	}
	return a.complete(ctx, a.template.Aggregate(company, texts))
}

func (a *Analyst) complete(ctx context.Context, p string) (string, error) {
	if a.chat == nil {
		return "", fmt.Errorf("completion client is not configured")
	}
	return a.chat.Complete(ctx, ports.CompletionRequest{
		Prompt:      p,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
}
