package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsAnalyzer/internal/domain"
	"NewsAnalyzer/internal/ports"
	"NewsAnalyzer/internal/prompt"
)

type recordingChat struct {
	requests []ports.CompletionRequest
	reply    string
	err      error
}

func (c *recordingChat) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	c.requests = append(c.requests, req)
	return c.reply, c.err
}

func TestAnalystSummarize(t *testing.T) {
	t.Parallel()

	chat := &recordingChat{reply: "- revenue up"}
	tpl, err := prompt.Resolve(prompt.TemplateBasic)
	require.NoError(t, err)

	a := NewAnalyst(chat, tpl, 0.7, 0)
	got, err := a.Summarize(context.Background(), domain.ArticleContent{Text: "Acme reported record revenue."})
	require.NoError(t, err)

	assert.Equal(t, "- revenue up", got)
	require.Len(t, chat.requests, 1)
	assert.Equal(t, 0.7, chat.requests[0].Temperature)
	assert.Equal(t, tpl.MaxTokens, chat.requests[0].MaxTokens)
	assert.Contains(t, chat.requests[0].Prompt, "Acme reported record revenue.")
}

func TestAnalystAggregate(t *testing.T) {
	t.Parallel()

	chat := &recordingChat{reply: "outlook"}
	tpl, err := prompt.Resolve(prompt.TemplateSentiment)
	require.NoError(t, err)

	a := NewAnalyst(chat, tpl, 0.2, 900)
	_, err = a.Aggregate(context.Background(), "Acme Corp", []domain.Summary{
		{Index: 1, Text: "first summary"},
		{Index: 3, Text: "third summary"},
	})
	require.NoError(t, err)

	require.Len(t, chat.requests, 1)
	req := chat.requests[0]
	assert.Equal(t, int64(900), req.MaxTokens)
	assert.Contains(t, req.Prompt, "Acme Corp")
	assert.Contains(t, req.Prompt, "first summary\n\nthird summary")
}

func TestAnalystAggregateRequiresSummaries(t *testing.T) {
	t.Parallel()

	chat := &recordingChat{}
	a := NewAnalyst(chat, prompt.Template{}, 0.7, 0)

	_, err := a.Aggregate(context.Background(), "Acme", nil)
	assert.Error(t, err)
	assert.Empty(t, chat.requests)
}

func TestAnalystPropagatesClientError(t *testing.T) {
	t.Parallel()

	boom := errors.New("rate limited")
	a := NewAnalyst(&recordingChat{err: boom}, prompt.Template{}, 0.7, 100)

	_, err := a.Summarize(context.Background(), domain.ArticleContent{Text: "x"})
	assert.ErrorIs(t, err, boom)
}
