package ports

import (
	"context"

	"NewsAnalyzer/internal/domain"
)

// NewsSearcher finds candidate articles for a company, most recent first.
type NewsSearcher interface {
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.ArticleRef, error)
}

// ContentExtractor downloads an article page and returns its main text.
type ContentExtractor interface {
	Extract(ctx context.Context, article domain.ArticleRef) (domain.ArticleContent, error)
}

// CompletionRequest is a single-message prompt with fixed generation parameters.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int64
}

// ChatClient sends prompts to a language-model completion service.
type ChatClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Summarizer turns extracted article text into a summary.
type Summarizer interface {
	Summarize(ctx context.Context, content domain.ArticleContent) (string, error)
}

// Aggregator synthesizes per-article summaries into one narrative.
type Aggregator interface {
	Aggregate(ctx context.Context, company string, summaries []domain.Summary) (string, error)
}
