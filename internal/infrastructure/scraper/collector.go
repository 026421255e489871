package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"NewsAnalyzer/internal/extraction"
)

// CollectorScraper extracts paragraphs through a colly collector. A fresh collector
// is built per call so visits never share state across articles.
type CollectorScraper struct {
	timeout time.Duration
}

var _ extraction.Strategy = (*CollectorScraper)(nil)

// NewCollectorScraper sets the per-request timeout; zero means 20s.
func NewCollectorScraper(timeout time.Duration) *CollectorScraper {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &CollectorScraper{timeout: timeout}
}

// Name identifies the strategy inside the registry.
func (c *CollectorScraper) Name() string {
	return "collector"
}

// Paragraphs visits pageURL and returns paragraph texts in document order.
func (c *CollectorScraper) Paragraphs(ctx context.Context, pageURL string) ([]string, error) {
	collector := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxBodySize(maxBodyBytes),
		colly.StdlibContext(ctx),
	)
	collector.SetRequestTimeout(c.timeout)

	var (
		paragraphs []string
		visitErr   error
	)

	collector.OnHTML("p", func(e *colly.HTMLElement) {
		if text := strings.TrimSpace(e.Text); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			visitErr = fmt.Errorf("article page returned status %d: %w", r.StatusCode, err)
			return
		}
		visitErr = fmt.Errorf("request document: %w", err)
	})

	if err := collector.Visit(pageURL); err != nil {
		if visitErr != nil {
			return nil, visitErr
		}
		return nil, fmt.Errorf("visit %s: %w", pageURL, err)
	}
	if visitErr != nil {
		return nil, visitErr
	}

	return paragraphs, nil
}
