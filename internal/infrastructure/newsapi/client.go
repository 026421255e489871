// Package newsapi searches recent articles through the NewsAPI "everything" endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsAnalyzer/internal/domain"
	"NewsAnalyzer/internal/ports"
	"NewsAnalyzer/internal/query"
)

const defaultBaseURL = "https://newsapi.org"

// Client implements ports.NewsSearcher.
type Client struct {
	apiKey   string
	baseURL  string
	pageSize int
	http     *http.Client
	now      func() time.Time
}

var _ ports.NewsSearcher = (*Client)(nil)

// Option configures the client.
type Option func(*Client)

// WithBaseURL points the client at another host (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithPageSize caps how many articles the service returns.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithClock overrides the time source used for the recency window.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a search client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		pageSize: 20,
		http:     &http.Client{Timeout: 20 * time.Second},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns matching articles ordered by publish time, most recent first.
// A response without an articles array is zero results, not an error.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.ArticleRef, error) {
	endpoint, err := c.buildURL(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", transportError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(resp)
	}

	var raw everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	articles := make([]domain.ArticleRef, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, domain.ArticleRef{
			Title:       strings.TrimSpace(item.Title),
			URL:         item.URL,
			Source:      item.Source.Name,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

func (c *Client) buildURL(q domain.SearchQuery) (string, error) {
	expr, err := query.Build(q)
	if err != nil {
		return "", err
	}

	parsed, err := url.Parse(c.baseURL + "/v2/everything")
	if err != nil {
		return "", fmt.Errorf("invalid newsapi url %s: %w", c.baseURL, err)
	}

	params := url.Values{}
	params.Set("q", expr)
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	if c.pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(c.pageSize))
	}
	if q.Window > 0 {
		params.Set("from", c.now().UTC().Add(-q.Window).Format("2006-01-02"))
	}
	parsed.RawQuery = params.Encode()

	return parsed.String(), nil
}

// transportError drops the request URL from net/http errors so query
// parameters never reach logs or users.
func transportError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s request: %w", uerr.Op, uerr.Err)
	}
	return err
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Errorf("newsapi returned %s: %s", resp.Status, apiErr.Message)
	}
	return fmt.Errorf("newsapi returned %s", resp.Status)
}

type everythingResponse struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []articleItem `json:"articles"`
}

type articleItem struct {
	Source      articleSource `json:"source"`
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
}

type articleSource struct {
	Name string `json:"name"`
}
