// Package queries expands one student profile summary into the search queries
// the retrieval stage consumes: four database queries with distinct search
// perspectives and two internet queries.
package queries

import (
	"context"
	"strings"

	"ai-advising-be/pkg/llm"
	"ai-advising-be/pkg/prompts"
)

const (
	// DatabaseQueryCount covers the direct, broad, contextual and
	// exploratory perspectives, one query each.
	DatabaseQueryCount = 4
	// InternetQueryCount covers industry trends and inspirational careers.
	InternetQueryCount = 2
)

// QuerySet is the full expansion of one profile summary.
type QuerySet struct {
	Database []string `json:"database_queries"`
	Internet []string `json:"internet_queries"`
}

type Diversifier struct {
	provider    llm.LLMProvider
	temperature float64
}

func NewDiversifier(provider llm.LLMProvider, temperature float64) *Diversifier {
	return &Diversifier{provider: provider, temperature: temperature}
}

// Expand runs both generation calls. There is no retry: a malformed response
// surfaces as MalformedGenerationError and the caller decides.
func (d *Diversifier) Expand(ctx context.Context, summary string) (*QuerySet, error) {
	database, err := d.DatabaseQueries(ctx, summary)
	if err != nil {
		return nil, err
	}
	internet, err := d.InternetQueries(ctx, summary)
	if err != nil {
		return nil, err
	}
	return &QuerySet{Database: database, Internet: internet}, nil
}

// DatabaseQueries generates the four alumni-store queries. The model returns
// one query per line; blank lines are dropped after trimming.
func (d *Diversifier) DatabaseQueries(ctx context.Context, summary string) ([]string, error) {
	raw, err := d.provider.Generate(ctx, prompts.QueryDiversification(summary), llm.WithTemperature(d.temperature))
	if err != nil {
		return nil, err
	}

	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}

	if len(out) < DatabaseQueryCount {
		return nil, &llm.MalformedGenerationError{
			Expected: "4 database queries, one per line",
			Got:      raw,
		}
	}
	return out[:DatabaseQueryCount], nil
}

// InternetQueries generates the two web queries. The model separates them
// with a blank line; segments are trimmed of whitespace and surrounding
// double quotes.
func (d *Diversifier) InternetQueries(ctx context.Context, summary string) ([]string, error) {
	raw, err := d.provider.Generate(ctx, prompts.InternetSearch(summary), llm.WithTemperature(d.temperature))
	if err != nil {
		return nil, err
	}

	var out []string
	for _, segment := range strings.Split(raw, "\n\n") {
		segment = strings.TrimSpace(segment)
		segment = strings.Trim(segment, `"`)
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}

	if len(out) < InternetQueryCount {
		return nil, &llm.MalformedGenerationError{
			Expected: "2 internet queries separated by a blank line",
			Got:      raw,
		}
	}
	return out[:InternetQueryCount], nil
}
