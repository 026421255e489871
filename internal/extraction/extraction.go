package extraction

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"NewsAnalyzer/internal/domain"
	"NewsAnalyzer/internal/ports"
)

// DefaultMinLength is the shortest extracted text treated as real article content.
const DefaultMinLength = 200

// Strategy captures a single page extraction implementation (plain HTTP, collector, etc.).
type Strategy interface {
	Name() string
	Paragraphs(ctx context.Context, url string) ([]string, error)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(s Strategy) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[s.Name()] = s
}

// Resolve returns a strategy by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Strategy, error) {
	if s, ok := r.strategies[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("extraction strategy %s is not registered", name)
}

// Extractor joins the paragraphs produced by a strategy and enforces the minimum length.
type Extractor struct {
	strategy  Strategy
	minLength int
}

var _ ports.ContentExtractor = (*Extractor)(nil)

// NewExtractor wires a strategy; minLength <= 0 falls back to DefaultMinLength.
func NewExtractor(s Strategy, minLength int) *Extractor {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return &Extractor{strategy: s, minLength: minLength}
}

// Extract fetches the article and returns its paragraph text in document order.
// The returned error is the raw cause; the pipeline attaches the stage and index.
func (e *Extractor) Extract(ctx context.Context, article domain.ArticleRef) (domain.ArticleContent, error) {
	if e.strategy == nil {
		return domain.ArticleContent{}, fmt.Errorf("extraction strategy is not configured")
	}

	paragraphs, err := e.strategy.Paragraphs(ctx, article.URL)
	if err != nil {
		return domain.ArticleContent{}, err
	}

	text := Join(paragraphs)
	if utf8.RuneCountInString(text) < e.minLength {
		return domain.ArticleContent{}, domain.ErrContentTooShort
	}

	return domain.ArticleContent{Article: article, Text: text}, nil
}

// Join trims each paragraph, drops empty ones, and separates the rest with newlines.
func Join(paragraphs []string) string {
	kept := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
