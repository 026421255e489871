// Package prompt holds the instruction templates sent to the completion service.
package prompt

import (
	"fmt"
	"strings"
)

const (
	TemplateBasic     = "basic"
	TemplateSentiment = "sentiment"
)

// Template pairs the summarize and aggregate instructions with a response length cap.
type Template struct {
	Name      string
	MaxTokens int64
	summarize string
	aggregate string
}

var templates = map[string]Template{
	TemplateBasic: {
		Name:      TemplateBasic,
		MaxTokens: 500,
		summarize: basicSummarize,
		aggregate: basicAggregate,
	},
	TemplateSentiment: {
		Name:      TemplateSentiment,
		MaxTokens: 700,
		summarize: sentimentSummarize,
		aggregate: sentimentAggregate,
	},
}

// Resolve returns the named template; an empty name selects the sentiment template.
func Resolve(name string) (Template, error) {
	if name == "" {
		name = TemplateSentiment
	}
	if t, ok := templates[name]; ok {
		return t, nil
	}
	return Template{}, fmt.Errorf("prompt template %s is not registered", name)
}

// Summarize embeds the full article text into the per-article instruction.
func (t Template) Summarize(content string) string {
	return fmt.Sprintf(t.summarize, content)
}

// Aggregate embeds the joined summaries into the synthesis instruction.
func (t Template) Aggregate(company string, summaries []string) string {
	if company == "" {
		company = "the company"
	}
	return fmt.Sprintf(t.aggregate, company, strings.Join(summaries, "\n\n"))
}

const basicSummarize = `Summarize this article into bullet points, focusing on the key financial points: %s`

const basicAggregate = `Combine these summaries into a comprehensive financial overview of %s. ` +
	`Highlight both the positive and the negative factors. ` +
	`Do not tell the reader to buy or sell the stock.

%s`

const sentimentSummarize = `You are a financial analyst. Read the news article below and:
1. List the key financial points as bullet points.
2. Emphasize any significant positive or negative signals about the company's performance.
3. Finish with one line "Sentiment: positive", "Sentiment: negative" or "Sentiment: neutral" describing the article's view of the company's financial outlook.

Article:
%s`

const sentimentAggregate = `You are a financial analyst. Below are summaries of recent news articles about %s.
Write a holistic narrative of the company's current financial situation and outlook.
Highlight the positive factors and the negative factors separately, and note where the articles disagree.
Do not give any direct buy, sell or hold recommendation.

Summaries:
%s`
