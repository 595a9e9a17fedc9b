// Package recommend turns gathered evidence into the final five-pathway
// recommendation set through one schema-constrained model call.
package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-advising-be/pkg/llm"
	"ai-advising-be/pkg/progress"
	"ai-advising-be/pkg/prompts"

	"github.com/xeipuuv/gojsonschema"
)

// DefaultTimeout bounds the whole synthesis call. There is no partial output:
// hitting the deadline yields SynthesisTimeoutError and nothing else.
const DefaultTimeout = 90 * time.Second

// expectedTypes is the required type of each recommendation in id order.
var expectedTypes = []string{"alumni", "alumni", "alumni", "trend", "figure"}

type Synthesizer struct {
	provider llm.LLMProvider
	timeout  time.Duration
	schema   *llm.StructuredSchema
}

func NewSynthesizer(provider llm.LLMProvider, timeout time.Duration) *Synthesizer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Synthesizer{
		provider: provider,
		timeout:  timeout,
		schema: &llm.StructuredSchema{
			Name:       SchemaName,
			Definition: json.RawMessage(SchemaJSON),
		},
	}
}

// SearchEvidence carries everything the pipeline gathered for one session.
// The query slices keep submission order, which is also the order the
// evidence is rendered in.
type SearchEvidence struct {
	DatabaseQueries  []string
	AlumniDocs       map[string][]string
	AlumniFailed     map[string]error
	InternetQueries  []string
	InternetInsights map[string]string
}

// Synthesize builds the prompt from the profile summary and evidence, runs
// the structured call and validates the result. All five recommendations come
// back or an error does.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	summary string,
	evidence SearchEvidence,
	tracker *progress.Tracker,
) (*RecommendationsResponse, error) {
	if tracker == nil {
		tracker = progress.NewTracker(nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tracker.EmitAt(progress.PhaseRecommendation, 0.85, "Preparing recommendation context", nil)

	prompt := prompts.Recommendation(
		summary,
		FormatAlumniEvidence(evidence.DatabaseQueries, evidence.AlumniDocs, evidence.AlumniFailed),
		FormatInternetEvidence(evidence.InternetQueries, evidence.InternetInsights),
	)

	tracker.EmitAt(progress.PhaseRecommendation, 0.9, "Generating recommendations", nil)

	raw, err := s.provider.GenerateStructured(ctx, prompt, s.schema)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, &SynthesisTimeoutError{Limit: s.timeout}
		}
		return nil, fmt.Errorf("synthesis call: %w", err)
	}

	tracker.EmitAt(progress.PhaseRecommendation, 0.95, "Validating recommendations", nil)

	response, err := s.parse(raw)
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *Synthesizer) parse(raw string) (*RecommendationsResponse, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(SchemaJSON),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		// Not valid JSON at all
		return nil, &llm.MalformedGenerationError{Expected: "recommendations_response JSON", Got: raw}
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return nil, &SchemaViolationError{Violations: violations}
	}

	var response RecommendationsResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil, &llm.MalformedGenerationError{Expected: "recommendations_response JSON", Got: raw}
	}

	if violations := checkInvariants(&response); len(violations) > 0 {
		return nil, &SchemaViolationError{Violations: violations}
	}
	return &response, nil
}

// checkInvariants enforces what JSON Schema alone cannot express cheaply:
// exactly five entries, ids 1..5 in order, the fixed type sequence, and
// exactly three key points and discussion points each.
func checkInvariants(response *RecommendationsResponse) []string {
	var violations []string

	if len(response.Recommendations) != len(expectedTypes) {
		return []string{fmt.Sprintf("expected %d recommendations, got %d", len(expectedTypes), len(response.Recommendations))}
	}

	for i, rec := range response.Recommendations {
		if rec.Id != i+1 {
			violations = append(violations, fmt.Sprintf("recommendation %d has id %d, want %d", i, rec.Id, i+1))
		}
		if rec.Type != expectedTypes[i] {
			violations = append(violations, fmt.Sprintf("recommendation id %d has type %q, want %q", rec.Id, rec.Type, expectedTypes[i]))
		}
		if len(rec.QuickView.KeyPoints) != 3 {
			violations = append(violations, fmt.Sprintf("recommendation id %d has %d key points, want 3", rec.Id, len(rec.QuickView.KeyPoints)))
		}
		if len(rec.DetailedView.DiscussionPoints) != 3 {
			violations = append(violations, fmt.Sprintf("recommendation id %d has %d discussion points, want 3", rec.Id, len(rec.DetailedView.DiscussionPoints)))
		}
	}
	return violations
}
