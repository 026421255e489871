package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageErrorMessage(t *testing.T) {
	t.Parallel()

	err := ExtractionError(2, ErrContentTooShort)
	assert.Equal(t, "extraction failed for article 2: content too short or unavailable", err.Error())

	err = SearchError(errors.New("status 401"))
	assert.Equal(t, "search failed: status 401", err.Error())
}

func TestStageErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("run: %w", ExtractionError(1, ErrContentTooShort))

	assert.ErrorIs(t, err, ErrContentTooShort)
	assert.True(t, IsStage(err, StageExtraction))
	assert.False(t, IsStage(err, StageSummarize))

	stage, ok := StageOf(err)
	assert.True(t, ok)
	assert.Equal(t, StageExtraction, stage)

	_, ok = StageOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestReportSummariesKeepOrder(t *testing.T) {
	t.Parallel()

	report := Report{
		TotalFound: 5,
		Articles: []ArticleResult{
			{Index: 1, Summary: &Summary{Index: 1, Text: "first"}},
			{Index: 2, Err: ExtractionError(2, ErrContentTooShort)},
			{Index: 3, Summary: &Summary{Index: 3, Text: "third"}},
		},
	}

	got := report.Summaries()
	if assert.Len(t, got, 2) {
		assert.Equal(t, "first", got[0].Text)
		assert.Equal(t, "third", got[1].Text)
	}
	assert.False(t, report.NoResults())
	assert.True(t, Report{}.NoResults())
}

func TestSummaryTextContainingErrorIsStillSuccess(t *testing.T) {
	t.Parallel()

	res := ArticleResult{Index: 1, Summary: &Summary{Text: "Error rates in guidance fell; revenue up 4%"}}
	assert.True(t, res.OK())
}
