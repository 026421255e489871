package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsAnalyzer/internal/domain"
)

type fakeSearcher struct {
	refs  []domain.ArticleRef
	err   error
	calls int
	last  domain.SearchQuery
}

func (f *fakeSearcher) Search(_ context.Context, q domain.SearchQuery) ([]domain.ArticleRef, error) {
	f.calls++
	f.last = q
	return f.refs, f.err
}

type fakeExtractor struct {
	mu     sync.Mutex
	fail   map[string]error
	delays map[string]time.Duration
	block  map[string]bool
	calls  []string
}

func (f *fakeExtractor) Extract(ctx context.Context, ref domain.ArticleRef) (domain.ArticleContent, error) {
	f.mu.Lock()
	f.calls = append(f.calls, ref.URL)
	f.mu.Unlock()

	if d := f.delays[ref.URL]; d > 0 {
		time.Sleep(d)
	}
	if f.block[ref.URL] {
		<-ctx.Done()
		return domain.ArticleContent{}, ctx.Err()
	}
	if err := f.fail[ref.URL]; err != nil {
		return domain.ArticleContent{}, err
	}
	return domain.ArticleContent{Article: ref, Text: "text of " + ref.Title}, nil
}

func (f *fakeExtractor) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeSummarizer struct {
	fail   map[string]error
	reply  map[string]string
	onCall func(domain.ArticleContent)
}

func (f *fakeSummarizer) Summarize(_ context.Context, content domain.ArticleContent) (string, error) {
	if f.onCall != nil {
		f.onCall(content)
	}
	if err := f.fail[content.Article.URL]; err != nil {
		return "", err
	}
	if r, ok := f.reply[content.Article.URL]; ok {
		return r, nil
	}
	return "  summary of " + content.Article.Title + "  ", nil
}

type fakeAggregator struct {
	calls   int
	company string
	inputs  []domain.Summary
	err     error
}

func (f *fakeAggregator) Aggregate(_ context.Context, company string, summaries []domain.Summary) (string, error) {
	f.calls++
	f.company = company
	f.inputs = summaries
	if f.err != nil {
		return "", f.err
	}
	return "overall outlook", nil
}

func makeRefs(n int) []domain.ArticleRef {
	refs := make([]domain.ArticleRef, n)
	for i := range refs {
		refs[i] = domain.ArticleRef{
			Title:  fmt.Sprintf("Article %d", i+1),
			URL:    fmt.Sprintf("https://example.com/%d", i+1),
			Source: "Reuters",
		}
	}
	return refs
}

type harness struct {
	searcher   *fakeSearcher
	extractor  *fakeExtractor
	summarizer *fakeSummarizer
	aggregator *fakeAggregator
	events     []domain.Event
}

func newHarness(refs []domain.ArticleRef) *harness {
	return &harness{
		searcher:   &fakeSearcher{refs: refs},
		extractor:  &fakeExtractor{fail: map[string]error{}, delays: map[string]time.Duration{}, block: map[string]bool{}},
		summarizer: &fakeSummarizer{fail: map[string]error{}, reply: map[string]string{}},
		aggregator: &fakeAggregator{},
	}
}

func (h *harness) pipeline(opts Options) *Pipeline {
	p := NewPipeline(PipelineDeps{
		Searcher:   h.searcher,
		Extractor:  h.extractor,
		Summarizer: h.summarizer,
		Aggregator: h.aggregator,
		Options:    opts,
	})
	p.newRunID = func() string { return "run-1" }
	return p
}

func (h *harness) run(t *testing.T, ctx context.Context, opts Options) domain.Report {
	t.Helper()
	report, err := h.pipeline(opts).Run(ctx, "Acme Corp", "ACME", func(e domain.Event) {
		h.events = append(h.events, e)
	})
	require.NoError(t, err)
	return report
}

func (h *harness) states() []domain.RunState {
	out := make([]domain.RunState, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.State)
	}
	return out
}

func (h *harness) articleOrder() []int {
	var out []int
	for _, e := range h.events {
		if e.Index > 0 && (len(out) == 0 || out[len(out)-1] != e.Index) {
			out = append(out, e.Index)
		}
	}
	return out
}

func TestRunAllArticlesSucceed(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(5))
	report := h.run(t, context.Background(), Options{Strategy: "financial", Window: 48 * time.Hour})

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 5, report.TotalFound)
	assert.Equal(t, []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}, h.extractor.Calls())
	assert.Equal(t, domain.SearchQuery{Company: "Acme Corp", Ticker: "ACME", Strategy: "financial", Window: 48 * time.Hour}, h.searcher.last)

	require.Len(t, report.Articles, 3)
	for i, a := range report.Articles {
		assert.True(t, a.OK())
		assert.Equal(t, i+1, a.Index)
		assert.Equal(t, fmt.Sprintf("summary of Article %d", i+1), a.Summary.Text)
	}

	assert.Equal(t, 1, h.aggregator.calls)
	assert.Equal(t, "Acme Corp", h.aggregator.company)
	require.Len(t, h.aggregator.inputs, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{h.aggregator.inputs[0].Index, h.aggregator.inputs[1].Index, h.aggregator.inputs[2].Index})

	require.NotNil(t, report.Aggregate)
	assert.Equal(t, "overall outlook", report.Aggregate.Text)
	assert.Len(t, report.Aggregate.Sources, 3)

	assert.Equal(t, []domain.RunState{
		domain.StateSearching, domain.StateSearched,
		domain.StateExtracting, domain.StateExtracted, domain.StateSummarizing, domain.StateSummarized,
		domain.StateExtracting, domain.StateExtracted, domain.StateSummarizing, domain.StateSummarized,
		domain.StateExtracting, domain.StateExtracted, domain.StateSummarizing, domain.StateSummarized,
		domain.StateAggregating, domain.StateDone,
	}, h.states())
	for _, e := range h.events {
		assert.Equal(t, "run-1", e.RunID)
	}
	assert.Equal(t, 5, h.events[1].Total)
}

func TestRunNoResults(t *testing.T) {
	t.Parallel()

	h := newHarness(nil)
	report := h.run(t, context.Background(), Options{})

	assert.True(t, report.NoResults())
	assert.Empty(t, h.extractor.Calls())
	assert.Equal(t, 0, h.aggregator.calls)
	assert.Equal(t, []domain.RunState{domain.StateSearching, domain.StateNoResults, domain.StateDone}, h.states())
}

func TestRunSearchFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(nil)
	h.searcher.err = errors.New("newsapi returned 401 Unauthorized")
	report := h.run(t, context.Background(), Options{})

	require.Error(t, report.SearchErr)
	assert.True(t, domain.IsStage(report.SearchErr, domain.StageSearch))
	assert.False(t, report.NoResults())
	assert.Empty(t, h.extractor.Calls())
	assert.Equal(t, []domain.RunState{domain.StateSearching, domain.StateSearchFailed, domain.StateDone}, h.states())
}

func TestRunProcessesAtMostAvailable(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(2))
	report := h.run(t, context.Background(), Options{})

	assert.Len(t, h.extractor.Calls(), 2)
	assert.Len(t, report.Articles, 2)
	assert.Len(t, h.aggregator.inputs, 2)
}

func TestRunExtractionFailureIsIsolated(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(5))
	h.extractor.fail["https://example.com/2"] = domain.ErrContentTooShort
	report := h.run(t, context.Background(), Options{})

	require.Len(t, report.Articles, 3)
	assert.True(t, report.Articles[0].OK())
	assert.False(t, report.Articles[1].OK())
	assert.True(t, report.Articles[2].OK())

	err := report.Articles[1].Err
	assert.True(t, domain.IsStage(err, domain.StageExtraction))
	assert.ErrorIs(t, err, domain.ErrContentTooShort)
	assert.Contains(t, err.Error(), "article 2")

	require.Len(t, h.aggregator.inputs, 2)
	assert.Equal(t, 1, h.aggregator.inputs[0].Index)
	assert.Equal(t, 3, h.aggregator.inputs[1].Index)
	assert.Contains(t, h.states(), domain.StateExtractFailed)
}

func TestRunSummarizationFailureIsIsolated(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(3))
	h.summarizer.fail["https://example.com/1"] = errors.New("quota exceeded")
	report := h.run(t, context.Background(), Options{})

	assert.True(t, domain.IsStage(report.Articles[0].Err, domain.StageSummarize))
	assert.Len(t, report.Summaries(), 2)
	assert.Equal(t, 1, h.aggregator.calls)
}

func TestRunSkipsAggregationWithoutSummaries(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(3))
	for _, r := range makeRefs(3) {
		h.extractor.fail[r.URL] = errors.New("status 403")
	}
	report := h.run(t, context.Background(), Options{})

	assert.Equal(t, 0, h.aggregator.calls)
	assert.Nil(t, report.Aggregate)
	assert.NoError(t, report.AggregateErr)
	assert.NotContains(t, h.states(), domain.StateAggregating)
	assert.Equal(t, domain.StateDone, h.states()[len(h.states())-1])
}

func TestRunAggregationFailureKeepsSummaries(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(3))
	h.aggregator.err = errors.New("503 Service Unavailable")
	report := h.run(t, context.Background(), Options{})

	assert.True(t, domain.IsStage(report.AggregateErr, domain.StageAggregation))
	assert.Nil(t, report.Aggregate)
	assert.Len(t, report.Summaries(), 3)
	assert.Contains(t, h.states(), domain.StateAggregateFailed)
}

func TestRunAcceptsSummaryMentioningError(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(1))
	h.summarizer.reply["https://example.com/1"] = "Error margins narrowed; revenue rose."
	report := h.run(t, context.Background(), Options{})

	require.Len(t, report.Summaries(), 1)
	assert.Equal(t, "Error margins narrowed; revenue rose.", report.Summaries()[0].Text)
	assert.Equal(t, 1, h.aggregator.calls)
}

func TestRunConcurrentKeepsOrder(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(3))
	h.extractor.delays["https://example.com/1"] = 60 * time.Millisecond
	h.extractor.delays["https://example.com/2"] = 30 * time.Millisecond
	report := h.run(t, context.Background(), Options{Concurrency: 3})

	assert.Equal(t, []int{1, 2, 3}, h.articleOrder())
	require.Len(t, report.Articles, 3)
	for i, a := range report.Articles {
		assert.Equal(t, i+1, a.Index)
	}
	require.Len(t, h.aggregator.inputs, 3)
	for i, s := range h.aggregator.inputs {
		assert.Equal(t, i+1, s.Index)
	}
}

func TestRunCallTimeout(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(2))
	h.extractor.block["https://example.com/1"] = true
	report := h.run(t, context.Background(), Options{CallTimeout: 20 * time.Millisecond})

	require.Len(t, report.Articles, 2)
	assert.ErrorIs(t, report.Articles[0].Err, context.DeadlineExceeded)
	assert.True(t, report.Articles[1].OK())
	assert.False(t, report.Cancelled)
	assert.Equal(t, 1, h.aggregator.calls)
}

func TestRunCancellationAbandonsRemaining(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newHarness(makeRefs(3))
	h.summarizer.onCall = func(content domain.ArticleContent) {
		if content.Article.URL == "https://example.com/1" {
			cancel()
		}
	}
	report := h.run(t, ctx, Options{})

	assert.True(t, report.Cancelled)
	assert.Equal(t, []string{"https://example.com/1"}, h.extractor.Calls())
	assert.Len(t, report.Articles, 1)
	assert.Equal(t, 0, h.aggregator.calls)
	states := h.states()
	assert.Equal(t, []domain.RunState{domain.StateCancelled, domain.StateDone}, states[len(states)-2:])
}

func TestRunRequiresCompany(t *testing.T) {
	t.Parallel()

	h := newHarness(makeRefs(1))
	_, err := h.pipeline(Options{}).Run(context.Background(), "   ", "", nil)

	assert.ErrorIs(t, err, ErrCompanyRequired)
	assert.Equal(t, 0, h.searcher.calls)
}

func TestOrderedEmitterBuffersLaterSlots(t *testing.T) {
	t.Parallel()

	var got []int
	o := newOrderedEmitter(3, func(e domain.Event) { got = append(got, e.Index) })

	o.slot(2)(domain.Event{Index: 3})
	o.slot(1)(domain.Event{Index: 2})
	o.finish(2)
	o.slot(0)(domain.Event{Index: 1})
	assert.Equal(t, []int{1}, got)

	o.finish(0)
	assert.Equal(t, []int{1, 2}, got)
	o.slot(1)(domain.Event{Index: 2})
	o.finish(1)
	assert.Equal(t, []int{1, 2, 2, 3}, got)
}
