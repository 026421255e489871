package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsAnalyzer/internal/extraction"
)

const (
	userAgent    = "Mozilla/5.0 (compatible; NewsAnalyzer/1.0)"
	maxBodyBytes = 4 << 20
)

// ParagraphScraper downloads static HTML and collects the text of every <p> element.
type ParagraphScraper struct {
	client *http.Client
}

var _ extraction.Strategy = (*ParagraphScraper)(nil)

// NewParagraphScraper wires an HTTP client; nil gets a client with a 20s timeout.
func NewParagraphScraper(client *http.Client) *ParagraphScraper {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &ParagraphScraper{client: client}
}

// Name identifies the strategy inside the registry.
func (p *ParagraphScraper) Name() string {
	return "paragraphs"
}

// Paragraphs fetches pageURL and returns paragraph texts in document order.
func (p *ParagraphScraper) Paragraphs(ctx context.Context, pageURL string) ([]string, error) {
	doc, err := p.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return paragraphTexts(doc.Selection), nil
}

func (p *ParagraphScraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("article page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func paragraphTexts(sel *goquery.Selection) []string {
	var out []string
	sel.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}
