package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"NewsAnalyzer/internal/config"
	"NewsAnalyzer/internal/domain"
	"NewsAnalyzer/internal/extraction"
	"NewsAnalyzer/internal/infrastructure/llm"
	"NewsAnalyzer/internal/infrastructure/newsapi"
	"NewsAnalyzer/internal/infrastructure/scraper"
	"NewsAnalyzer/internal/logging"
	"NewsAnalyzer/internal/prompt"
	"NewsAnalyzer/internal/query"
	"NewsAnalyzer/internal/usecase"
	"NewsAnalyzer/internal/web"
)

// Application wires configs to use cases and user-facing surfaces.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New validates cfg and builds the pipeline. Configuration problems are
// reported as *config.ConfigError before any client is created.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if _, err := query.Resolve(cfg.Search.Strategy); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	tpl, err := prompt.Resolve(cfg.Completion.Template)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	searcher := newsapi.NewClient(cfg.Search.APIKey,
		newsapi.WithBaseURL(cfg.Search.BaseURL),
		newsapi.WithPageSize(cfg.Search.PageSize),
		newsapi.WithHTTPClient(&http.Client{Timeout: cfg.Pipeline.CallTimeout}),
	)

	registry := extraction.NewRegistry()
	registry.Register(scraper.NewParagraphScraper(&http.Client{Timeout: cfg.Pipeline.CallTimeout}))
	registry.Register(scraper.NewCollectorScraper(cfg.Pipeline.CallTimeout))
	strategy, err := registry.Resolve(cfg.Extraction.Strategy)
	if err != nil {
		return nil, fmt.Errorf("extraction: %w", err)
	}

	chat, err := llm.New(cfg.Completion)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}
	analyst := usecase.NewAnalyst(chat, tpl, cfg.Completion.Temperature, cfg.Completion.MaxTokens)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Searcher:   searcher,
		Extractor:  extraction.NewExtractor(strategy, cfg.Extraction.MinLength),
		Summarizer: analyst,
		Aggregator: analyst,
		Logger:     baseLogger.With("component", "pipeline"),
		Options: usecase.Options{
			MaxArticles: cfg.Pipeline.MaxArticles,
			Concurrency: cfg.Pipeline.Concurrency,
			CallTimeout: cfg.Pipeline.CallTimeout,
			Strategy:    cfg.Search.Strategy,
			Keywords:    cfg.Search.Keywords,
			Window:      cfg.Search.Window(),
		},
	})

	baseLogger.Debug("application ready",
		"provider", cfg.Completion.Provider,
		"template", tpl.Name,
		"extraction", strategy.Name(),
	)
	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}, nil
}

// Analyze runs the pipeline once for company and the optional ticker.
func (a *Application) Analyze(ctx context.Context, company, ticker string, progress usecase.Progress) (domain.Report, error) {
	return a.pipeline.Run(ctx, company, ticker, progress)
}

// Handler exposes the web form and JSON API.
func (a *Application) Handler() http.Handler {
	return web.NewServer(a.pipeline, a.cfg.Pipeline.MaxArticles, a.logger.With("component", "web")).Routes()
}

// Config returns the settings the application was built with.
func (a *Application) Config() config.Config {
	return a.cfg
}
