// Package presenter turns pipeline events into user-facing status messages.
package presenter

import (
	"fmt"
	"time"

	"NewsAnalyzer/internal/domain"
)

// Level tags how a message should be rendered.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelHeading Level = "heading"
	LevelText    Level = "text"
	LevelBlock   Level = "block"
)

// Disclaimer closes every run.
const Disclaimer = "This analysis is generated automatically from news articles and is not financial advice."

// Message is one renderable line. Title is only set for block messages.
type Message struct {
	Level Level
	Title string
	Text  string
}

// Messages describes a single event. maxArticles is the per-run article cap used
// to phrase the search result line.
func Messages(e domain.Event, maxArticles int) []Message {
	switch e.State {
	case domain.StateSearching:
		return []Message{{Level: LevelInfo, Text: "Searching for financial news..."}}
	case domain.StateNoResults:
		return []Message{{Level: LevelWarning, Text: "No relevant articles found. Try another company name."}}
	case domain.StateSearchFailed:
		return []Message{{Level: LevelError, Text: errText(e.Err)}}
	case domain.StateSearched:
		return []Message{{Level: LevelSuccess, Text: fmt.Sprintf("Found %d articles. Processing the top %d.", e.Total, processing(e.Total, maxArticles))}}
	case domain.StateExtracting:
		return append(articleHeader(e), Message{Level: LevelInfo, Text: fmt.Sprintf("Scraping article %d...", e.Index)})
	case domain.StateSummarizing:
		return []Message{{Level: LevelInfo, Text: fmt.Sprintf("Summarizing article %d...", e.Index)}}
	case domain.StateExtractFailed, domain.StateSummarizeFailed, domain.StateAggregateFailed:
		return []Message{{Level: LevelError, Text: errText(e.Err)}}
	case domain.StateSummarized:
		msgs := []Message{{Level: LevelSuccess, Text: fmt.Sprintf("Article %d summarized!", e.Index)}}
		if e.Summary != nil {
			msgs = append(msgs, Message{Level: LevelBlock, Title: fmt.Sprintf("Summary of article %d", e.Index), Text: e.Summary.Text})
		}
		return msgs
	case domain.StateAggregating:
		return []Message{{Level: LevelInfo, Text: "Creating a comprehensive summary..."}}
	case domain.StateCancelled:
		return []Message{{Level: LevelWarning, Text: "Analysis cancelled."}}
	case domain.StateDone:
		var msgs []Message
		if e.Aggregate != nil {
			msgs = append(msgs,
				Message{Level: LevelSuccess, Text: "Comprehensive summary generated!"},
				Message{Level: LevelBlock, Title: "Final summary", Text: e.Aggregate.Text},
			)
		}
		return append(msgs, Message{Level: LevelText, Text: Disclaimer})
	}
	return nil
}

func articleHeader(e domain.Event) []Message {
	if e.Article == nil {
		return nil
	}
	msgs := []Message{
		{Level: LevelHeading, Text: fmt.Sprintf("Article %d: %s", e.Index, e.Article.Title)},
		{Level: LevelText, Text: "Source: " + e.Article.Source},
		{Level: LevelText, Text: "URL: " + e.Article.URL},
	}
	if !e.Article.PublishedAt.IsZero() {
		msgs = append(msgs, Message{Level: LevelText, Text: "Published: " + e.Article.PublishedAt.UTC().Format(time.RFC1123)})
	}
	return msgs
}

func processing(total, maxArticles int) int {
	if maxArticles > 0 && total > maxArticles {
		return maxArticles
	}
	return total
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
