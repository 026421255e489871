package domain

// RunState enumerates the milestones of one pipeline run.
type RunState string

const (
	StateIdle            RunState = "idle"
	StateSearching       RunState = "searching"
	StateNoResults       RunState = "no_results"
	StateSearched        RunState = "searched"
	StateSearchFailed    RunState = "search_failed"
	StateExtracting      RunState = "extracting"
	StateExtractFailed   RunState = "extract_failed"
	StateExtracted       RunState = "extracted"
	StateSummarizing     RunState = "summarizing"
	StateSummarizeFailed RunState = "summarize_failed"
	StateSummarized      RunState = "summarized"
	StateAggregating     RunState = "aggregating"
	StateAggregateFailed RunState = "aggregate_failed"
	StateCancelled       RunState = "cancelled"
	StateDone            RunState = "done"
)

// Event is a progress notification emitted while a run advances.
// Index is 1-based and only set for article-scoped states.
type Event struct {
	RunID     string
	State     RunState
	Index     int
	Total     int
	Article   *ArticleRef
	Summary   *Summary
	Aggregate *AggregateReport
	Err       error
}

// ArticleResult is the tagged outcome of extracting and summarizing one article:
// exactly one of Summary or Err is set.
type ArticleResult struct {
	Index   int        `json:"index"`
	Article ArticleRef `json:"article"`
	Summary *Summary   `json:"summary,omitempty"`
	Err     error      `json:"-"`
}

// OK reports whether the article produced a summary.
func (r ArticleResult) OK() bool {
	return r.Err == nil && r.Summary != nil
}

// Report is everything one run produced.
type Report struct {
	RunID        string           `json:"run_id"`
	Company      string           `json:"company"`
	Ticker       string           `json:"ticker,omitempty"`
	TotalFound   int              `json:"total_found"`
	Articles     []ArticleResult  `json:"articles"`
	Aggregate    *AggregateReport `json:"aggregate,omitempty"`
	SearchErr    error            `json:"-"`
	AggregateErr error            `json:"-"`
	Cancelled    bool             `json:"cancelled"`
}

// Summaries returns successful summaries in search-result order.
func (r Report) Summaries() []Summary {
	out := make([]Summary, 0, len(r.Articles))
	for _, a := range r.Articles {
		if a.OK() {
			out = append(out, *a.Summary)
		}
	}
	return out
}

// NoResults reports whether the search succeeded but found nothing.
func (r Report) NoResults() bool {
	return r.SearchErr == nil && r.TotalFound == 0 && !r.Cancelled
}
