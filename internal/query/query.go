// Package query turns a company lookup into a news search expression.
package query

import (
	"fmt"
	"strings"

	"NewsAnalyzer/internal/domain"
)

const (
	// StrategyBasic appends the keyword list to the bare company name.
	StrategyBasic = "basic"
	// StrategyFinancial quotes the company, ORs in the ticker and ANDs a keyword group.
	StrategyFinancial = "financial"
)

// Builder renders a SearchQuery into a search-service query string.
type Builder func(q domain.SearchQuery) string

var builders = map[string]Builder{
	StrategyBasic:     buildBasic,
	StrategyFinancial: buildFinancial,
}

// Resolve returns the builder registered under name; an empty name selects the financial strategy.
func Resolve(name string) (Builder, error) {
	if name == "" {
		name = StrategyFinancial
	}
	if b, ok := builders[name]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("query strategy %s is not registered", name)
}

// Build renders q with its own strategy.
func Build(q domain.SearchQuery) (string, error) {
	b, err := Resolve(q.Strategy)
	if err != nil {
		return "", err
	}
	return b(q), nil
}

func buildBasic(q domain.SearchQuery) string {
	parts := []string{strings.TrimSpace(q.Company)}
	if t := strings.TrimSpace(q.Ticker); t != "" {
		parts = append(parts, t)
	}
	return strings.Join(parts, " ") + " " + strings.Join(keywords(q), " OR ")
}

func buildFinancial(q domain.SearchQuery) string {
	subject := quote(strings.TrimSpace(q.Company))
	if t := strings.ToUpper(strings.TrimSpace(q.Ticker)); t != "" {
		subject = fmt.Sprintf("(%s OR %s)", subject, t)
	}

	kws := keywords(q)
	quoted := make([]string, 0, len(kws))
	for _, kw := range kws {
		quoted = append(quoted, quote(kw))
	}
	return fmt.Sprintf("%s AND (%s)", subject, strings.Join(quoted, " OR "))
}

func keywords(q domain.SearchQuery) []string {
	if len(q.Keywords) > 0 {
		return q.Keywords
	}
	return domain.DefaultKeywords
}

// quote wraps multi-word phrases so the search service matches them verbatim.
func quote(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + strings.ReplaceAll(s, `"`, "") + `"`
	}
	return s
}
