package domain

import (
	"errors"
	"fmt"
)

// Stage enumerates the pipeline stages that can fail independently.
type Stage string

const (
	StageSearch      Stage = "search"
	StageExtraction  Stage = "extraction"
	StageSummarize   Stage = "summarization"
	StageAggregation Stage = "aggregation"
)

// ErrContentTooShort marks extracted text that is empty or below the minimum length.
var ErrContentTooShort = errors.New("content too short or unavailable")

// StageError carries the failing stage, the 1-based article position when the
// failure is article scoped, and the underlying cause.
type StageError struct {
	Stage Stage
	Index int
	Err   error
}

func (e *StageError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("%s failed for article %d: %v", e.Stage, e.Index, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// SearchError wraps a failure calling the news search service.
func SearchError(err error) error {
	return &StageError{Stage: StageSearch, Err: err}
}

// ExtractionError wraps a fetch failure or unusable content for article index.
func ExtractionError(index int, err error) error {
	return &StageError{Stage: StageExtraction, Index: index, Err: err}
}

// SummarizationError wraps a completion failure for article index.
func SummarizationError(index int, err error) error {
	return &StageError{Stage: StageSummarize, Index: index, Err: err}
}

// AggregationError wraps a completion failure while building the aggregate report.
func AggregationError(err error) error {
	return &StageError{Stage: StageAggregation, Err: err}
}

// StageOf reports the stage recorded in err, if any.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// IsStage reports whether err is a StageError for the given stage.
func IsStage(err error, stage Stage) bool {
	s, ok := StageOf(err)
	return ok && s == stage
}
