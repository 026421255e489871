package presenter

import (
	"time"

	"NewsAnalyzer/internal/domain"
)

// ReportView is the JSON shape of a finished run. Errors are flattened to strings.
type ReportView struct {
	RunID          string        `json:"run_id"`
	Company        string        `json:"company"`
	Ticker         string        `json:"ticker,omitempty"`
	TotalFound     int           `json:"total_found"`
	NoResults      bool          `json:"no_results"`
	Cancelled      bool          `json:"cancelled"`
	SearchError    string        `json:"search_error,omitempty"`
	Articles       []ArticleView `json:"articles"`
	FinalSummary   string        `json:"final_summary,omitempty"`
	AggregateError string        `json:"aggregate_error,omitempty"`
	Disclaimer     string        `json:"disclaimer"`
}

// ArticleView is one processed article.
type ArticleView struct {
	Index       int        `json:"index"`
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// NewReportView converts a report for JSON output.
func NewReportView(r domain.Report) ReportView {
	v := ReportView{
		RunID:      r.RunID,
		Company:    r.Company,
		Ticker:     r.Ticker,
		TotalFound: r.TotalFound,
		NoResults:  r.NoResults(),
		Cancelled:  r.Cancelled,
		Articles:   make([]ArticleView, 0, len(r.Articles)),
		Disclaimer: Disclaimer,
	}
	if r.SearchErr != nil {
		v.SearchError = r.SearchErr.Error()
	}
	if r.AggregateErr != nil {
		v.AggregateError = r.AggregateErr.Error()
	}
	if r.Aggregate != nil {
		v.FinalSummary = r.Aggregate.Text
	}

	for _, a := range r.Articles {
		av := ArticleView{
			Index:  a.Index,
			Title:  a.Article.Title,
			Source: a.Article.Source,
			URL:    a.Article.URL,
		}
		if !a.Article.PublishedAt.IsZero() {
			t := a.Article.PublishedAt
			av.PublishedAt = &t
		}
		if a.Summary != nil {
			av.Summary = a.Summary.Text
		}
		if a.Err != nil {
			av.Error = a.Err.Error()
		}
		v.Articles = append(v.Articles, av)
	}
	return v
}
