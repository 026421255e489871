package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"NewsAnalyzer/internal/domain"
	"NewsAnalyzer/internal/logging"
	"NewsAnalyzer/internal/ports"
)

// ErrCompanyRequired is returned before any stage runs when the company name is blank.
var ErrCompanyRequired = errors.New("company name is required")

// Progress receives run events in search-result order. Calls are never concurrent.
type Progress func(domain.Event)

// Options bounds a run and shapes its search query.
type Options struct {
	MaxArticles int
	Concurrency int
	CallTimeout time.Duration
	Strategy    string
	Keywords    []string
	Window      time.Duration
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Searcher   ports.NewsSearcher
	Extractor  ports.ContentExtractor
	Summarizer ports.Summarizer
	Aggregator ports.Aggregator
	Logger     *slog.Logger
	Options    Options
}

// Pipeline implements search, per-article extraction and summarization, and aggregation.
type Pipeline struct {
	searcher   ports.NewsSearcher
	extractor  ports.ContentExtractor
	summarizer ports.Summarizer
	aggregator ports.Aggregator
	logger     *slog.Logger
	opts       Options
	newRunID   func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	opts := deps.Options
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = 3
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Pipeline{
		searcher:   deps.Searcher,
		extractor:  deps.Extractor,
		summarizer: deps.Summarizer,
		aggregator: deps.Aggregator,
		logger:     logger,
		opts:       opts,
		newRunID:   uuid.NewString,
	}
}

// Run executes one end-to-end analysis for company and the optional ticker.
// Stage failures are recorded in the report; only invalid input returns an error.
func (p *Pipeline) Run(ctx context.Context, company, ticker string, progress Progress) (domain.Report, error) {
	company = strings.TrimSpace(company)
	ticker = strings.TrimSpace(ticker)
	if company == "" {
		return domain.Report{}, ErrCompanyRequired
	}

	runID := p.newRunID()
	logger := p.logger.With("run_id", runID, "company", company)
	emit := func(e domain.Event) {
		e.RunID = runID
		if progress != nil {
			progress(e)
		}
	}

	report := domain.Report{RunID: runID, Company: company, Ticker: ticker}
	logger.Info("run started", "ticker", ticker)

	refs, ok := p.search(ctx, &report, logger, emit)
	if !ok {
		return report, nil
	}

	report.Articles = p.processArticles(ctx, refs, logger, emit)

	if ctx.Err() != nil {
		p.cancel(&report, logger, emit)
		return report, nil
	}

	p.aggregate(ctx, &report, logger, emit)
	return report, nil
}

func (p *Pipeline) search(ctx context.Context, report *domain.Report, logger *slog.Logger, emit Progress) ([]domain.ArticleRef, bool) {
	emit(domain.Event{State: domain.StateSearching})

	q := domain.SearchQuery{
		Company:  report.Company,
		Ticker:   report.Ticker,
		Keywords: p.opts.Keywords,
		Window:   p.opts.Window,
		Strategy: p.opts.Strategy,
	}

	callCtx, cancel := p.callContext(ctx)
	refs, err := p.searcher.Search(callCtx, q)
	cancel()

	if err != nil {
		if ctx.Err() != nil {
			p.cancel(report, logger, emit)
			return nil, false
		}
		report.SearchErr = domain.SearchError(err)
		logger.Warn("search failed", "error", err)
		emit(domain.Event{State: domain.StateSearchFailed, Err: report.SearchErr})
		emit(domain.Event{State: domain.StateDone})
		return nil, false
	}

	report.TotalFound = len(refs)
	if len(refs) == 0 {
		logger.Info("no articles found")
		emit(domain.Event{State: domain.StateNoResults})
		emit(domain.Event{State: domain.StateDone})
		return nil, false
	}

	if len(refs) > p.opts.MaxArticles {
		refs = refs[:p.opts.MaxArticles]
	}
	logger.Debug("search done", "found", report.TotalFound, "processing", len(refs))
	emit(domain.Event{State: domain.StateSearched, Total: report.TotalFound})

	return refs, true
}

// processArticles runs extraction and summarization for every ref, at most
// Concurrency at a time. Results keep ref order; abandoned refs are dropped.
func (p *Pipeline) processArticles(ctx context.Context, refs []domain.ArticleRef, logger *slog.Logger, emit Progress) []domain.ArticleResult {
	results := make([]domain.ArticleResult, len(refs))
	ordered := newOrderedEmitter(len(refs), emit)

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)
	for i := range refs {
		g.Go(func() error {
			defer ordered.finish(i)
			if ctx.Err() != nil {
				return nil
			}
			results[i] = p.processArticle(ctx, i+1, refs[i], logger, ordered.slot(i))
			return nil
		})
	}
	_ = g.Wait()

	attempted := results[:0]
	for _, r := range results {
		if r.Index > 0 {
			attempted = append(attempted, r)
		}
	}
	return attempted
}

func (p *Pipeline) processArticle(ctx context.Context, index int, ref domain.ArticleRef, logger *slog.Logger, emit Progress) domain.ArticleResult {
	res := domain.ArticleResult{Index: index, Article: ref}
	logger = logger.With("article", index, "url", ref.URL)

	emit(domain.Event{State: domain.StateExtracting, Index: index, Article: &ref})

	callCtx, cancel := p.callContext(ctx)
	content, err := p.extractor.Extract(callCtx, ref)
	cancel()
	if err != nil {
		res.Err = domain.ExtractionError(index, err)
		logger.Warn("extraction failed", "error", err)
		emit(domain.Event{State: domain.StateExtractFailed, Index: index, Article: &ref, Err: res.Err})
		return res
	}
	emit(domain.Event{State: domain.StateExtracted, Index: index, Article: &ref})

	emit(domain.Event{State: domain.StateSummarizing, Index: index, Article: &ref})

	callCtx, cancel = p.callContext(ctx)
	text, err := p.summarizer.Summarize(callCtx, content)
	cancel()
	if err != nil {
		res.Err = domain.SummarizationError(index, err)
		logger.Warn("summarization failed", "error", err)
		emit(domain.Event{State: domain.StateSummarizeFailed, Index: index, Article: &ref, Err: res.Err})
		return res
	}

	res.Summary = &domain.Summary{Article: ref, Index: index, Text: strings.TrimSpace(text)}
	logger.Debug("article summarized", "chars", len(res.Summary.Text))
	emit(domain.Event{State: domain.StateSummarized, Index: index, Article: &ref, Summary: res.Summary})
	return res
}

func (p *Pipeline) aggregate(ctx context.Context, report *domain.Report, logger *slog.Logger, emit Progress) {
	summaries := report.Summaries()
	if len(summaries) == 0 {
		logger.Info("run finished", "summaries", 0)
		emit(domain.Event{State: domain.StateDone})
		return
	}

	emit(domain.Event{State: domain.StateAggregating, Total: len(summaries)})

	callCtx, cancel := p.callContext(ctx)
	text, err := p.aggregator.Aggregate(callCtx, report.Company, summaries)
	cancel()

	if err != nil {
		if ctx.Err() != nil {
			p.cancel(report, logger, emit)
			return
		}
		report.AggregateErr = domain.AggregationError(err)
		logger.Warn("aggregation failed", "error", err)
		emit(domain.Event{State: domain.StateAggregateFailed, Err: report.AggregateErr})
		emit(domain.Event{State: domain.StateDone})
		return
	}

	sources := make([]domain.ArticleRef, 0, len(summaries))
	for _, s := range summaries {
		sources = append(sources, s.Article)
	}
	report.Aggregate = &domain.AggregateReport{Text: strings.TrimSpace(text), Sources: sources}

	logger.Info("run finished", "summaries", len(summaries))
	emit(domain.Event{State: domain.StateDone, Aggregate: report.Aggregate})
}

func (p *Pipeline) cancel(report *domain.Report, logger *slog.Logger, emit Progress) {
	report.Cancelled = true
	logger.Info("run cancelled")
	emit(domain.Event{State: domain.StateCancelled})
	emit(domain.Event{State: domain.StateDone})
}

func (p *Pipeline) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.opts.CallTimeout > 0 {
		return context.WithTimeout(ctx, p.opts.CallTimeout)
	}
	return context.WithCancel(ctx)
}
