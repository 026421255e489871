package domain

import "time"

// DefaultKeywords is the financial keyword disjunction attached to every search.
var DefaultKeywords = []string{
	"earnings",
	"revenue",
	"profit",
	"loss",
	"financial results",
	"stock",
	"shares",
}

// SearchQuery describes one company lookup against the news search service.
type SearchQuery struct {
	Company  string
	Ticker   string
	Keywords []string
	// Window restricts results to articles published within it; zero disables the filter.
	Window   time.Duration
	Strategy string
}

// ArticleRef is a core entity describing article metadata returned by search.
type ArticleRef struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// ArticleContent is the text extracted from one article page.
type ArticleContent struct {
	Article ArticleRef
	Text    string
}

// Summary is the model's free-text digest of one article.
type Summary struct {
	Article ArticleRef `json:"article"`
	Index   int        `json:"index"`
	Text    string     `json:"text"`
}

// AggregateReport synthesizes the per-article summaries of a run.
type AggregateReport struct {
	Text    string       `json:"text"`
	Sources []ArticleRef `json:"sources"`
}
