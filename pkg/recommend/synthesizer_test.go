package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"ai-advising-be/pkg/llm"
	"ai-advising-be/pkg/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResponse() *RecommendationsResponse {
	types := []string{"alumni", "alumni", "alumni", "trend", "figure"}
	var recs []Recommendation
	for i, typ := range types {
		recs = append(recs, Recommendation{
			Id:   i + 1,
			Type: typ,
			QuickView: QuickView{
				Title:     fmt.Sprintf("Pathway %d", i+1),
				Summary:   "The student aligns with this pathway.",
				KeyPoints: []string{"point one", "point two", "point three"},
				NextStep:  "Discuss course selection.",
			},
			DetailedView: DetailedView{
				Reasoning: "Strong overlap between interests and this trajectory.",
				Evidence: Evidence{
					AlumniPatterns:  "Several alumni followed this route.",
					IndustryContext: "Demand is growing in this area.",
				},
				DiscussionPoints: []string{"topic one", "topic two", "topic three"},
			},
		})
	}
	return &RecommendationsResponse{Recommendations: recs}
}

func marshal(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

type fixedProvider struct {
	output string
	err    error
	schema *llm.StructuredSchema
	prompt string
}

func (f *fixedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return f.output, f.err
}

func (f *fixedProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return f.output, f.err
}

func (f *fixedProvider) GenerateStructured(_ context.Context, prompt string, schema *llm.StructuredSchema, _ ...llm.Option) (string, error) {
	f.prompt = prompt
	f.schema = schema
	return f.output, f.err
}

type hangingProvider struct{}

func (h *hangingProvider) Chat(ctx context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (h *hangingProvider) Generate(ctx context.Context, _ string, _ ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (h *hangingProvider) GenerateStructured(ctx context.Context, _ string, _ *llm.StructuredSchema, _ ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestSynthesize(t *testing.T) {
	evidence := SearchEvidence{
		DatabaseQueries: []string{"ml engineers"},
		AlumniDocs: map[string][]string{
			"ml engineers": {"alice, cs, ml engineer", "bob, stats, data scientist"},
		},
		InternetQueries: []string{"ai trends"},
		InternetInsights: map[string]string{
			"ai trends": "Demand for ML roles keeps growing.",
		},
	}

	t.Run("returns all five recommendations", func(t *testing.T) {
		provider := &fixedProvider{output: marshal(t, validResponse())}
		s := NewSynthesizer(provider, time.Second)

		got, err := s.Synthesize(context.Background(), "summary", evidence, nil)
		require.NoError(t, err)
		require.Len(t, got.Recommendations, 5)
		assert.Equal(t, "alumni", got.Recommendations[0].Type)
		assert.Equal(t, "figure", got.Recommendations[4].Type)

		// The structured call carries the named schema, not a free-form ask
		require.NotNil(t, provider.schema)
		assert.Equal(t, SchemaName, provider.schema.Name)
		assert.Contains(t, provider.prompt, "alice, cs, ml engineer")
		assert.Contains(t, provider.prompt, "Demand for ML roles keeps growing.")
	})

	t.Run("non json output is malformed", func(t *testing.T) {
		provider := &fixedProvider{output: "I cannot produce JSON today"}
		s := NewSynthesizer(provider, time.Second)

		_, err := s.Synthesize(context.Background(), "summary", evidence, nil)
		var malformed *llm.MalformedGenerationError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("wrong count violates schema", func(t *testing.T) {
		response := validResponse()
		response.Recommendations = response.Recommendations[:4]
		provider := &fixedProvider{output: marshal(t, response)}
		s := NewSynthesizer(provider, time.Second)

		_, err := s.Synthesize(context.Background(), "summary", evidence, nil)
		var violation *SchemaViolationError
		require.ErrorAs(t, err, &violation)
	})

	t.Run("wrong type sequence violates schema", func(t *testing.T) {
		response := validResponse()
		response.Recommendations[3].Type = "figure"
		provider := &fixedProvider{output: marshal(t, response)}
		s := NewSynthesizer(provider, time.Second)

		_, err := s.Synthesize(context.Background(), "summary", evidence, nil)
		var violation *SchemaViolationError
		require.ErrorAs(t, err, &violation)
	})

	t.Run("wrong key point count violates schema", func(t *testing.T) {
		response := validResponse()
		response.Recommendations[1].QuickView.KeyPoints = []string{"only", "two"}
		provider := &fixedProvider{output: marshal(t, response)}
		s := NewSynthesizer(provider, time.Second)

		_, err := s.Synthesize(context.Background(), "summary", evidence, nil)
		var violation *SchemaViolationError
		require.ErrorAs(t, err, &violation)
	})

	t.Run("shuffled ids violate schema", func(t *testing.T) {
		response := validResponse()
		response.Recommendations[0].Id = 5
		response.Recommendations[4].Id = 1
		provider := &fixedProvider{output: marshal(t, response)}
		s := NewSynthesizer(provider, time.Second)

		_, err := s.Synthesize(context.Background(), "summary", evidence, nil)
		var violation *SchemaViolationError
		require.ErrorAs(t, err, &violation)
	})

	t.Run("unknown type is rejected by the json schema", func(t *testing.T) {
		response := validResponse()
		response.Recommendations[0].Type = "mentor"
		provider := &fixedProvider{output: marshal(t, response)}
		s := NewSynthesizer(provider, time.Second)

		_, err := s.Synthesize(context.Background(), "summary", evidence, nil)
		var violation *SchemaViolationError
		require.ErrorAs(t, err, &violation)
	})

	t.Run("timeout yields SynthesisTimeoutError", func(t *testing.T) {
		s := NewSynthesizer(&hangingProvider{}, 50*time.Millisecond)

		_, err := s.Synthesize(context.Background(), "summary", evidence, nil)
		var timeout *SynthesisTimeoutError
		require.ErrorAs(t, err, &timeout)
	})

	t.Run("emits sub progress in order", func(t *testing.T) {
		var values []float64
		tracker := progress.NewTracker(func(e progress.Event) {
			values = append(values, e.Progress)
		})
		provider := &fixedProvider{output: marshal(t, validResponse())}
		s := NewSynthesizer(provider, time.Second)

		_, err := s.Synthesize(context.Background(), "summary", evidence, tracker)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.85, 0.9, 0.95}, values)
	})
}

func TestFormatAlumniEvidence(t *testing.T) {
	t.Run("renders query blocks with dash lines", func(t *testing.T) {
		got := FormatAlumniEvidence(
			[]string{"ml roles"},
			map[string][]string{"ml roles": {"doc a", "doc b"}},
			nil,
		)
		assert.Equal(t, "Query: ml roles\n  - doc a\n  - doc b", got)
	})

	t.Run("blocks follow query submission order", func(t *testing.T) {
		got := FormatAlumniEvidence(
			[]string{"zebra careers", "actuarial paths"},
			map[string][]string{
				"zebra careers":   {"doc z"},
				"actuarial paths": {"doc a"},
			},
			nil,
		)
		assert.Equal(t, "Query: zebra careers\n  - doc z\n\nQuery: actuarial paths\n  - doc a", got)
	})

	t.Run("failed query renders its error marker", func(t *testing.T) {
		got := FormatAlumniEvidence(
			[]string{"ok", "broken"},
			map[string][]string{"ok": {"doc"}},
			map[string]error{"broken": fmt.Errorf("timeout")},
		)
		assert.Equal(t, "Query: ok\n  - doc\n\nQuery: broken\n  - Error processing query: timeout", got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "No alumni data available.", FormatAlumniEvidence(nil, nil, nil))
	})
}

func TestFormatInternetEvidence(t *testing.T) {
	t.Run("renders query result pairs", func(t *testing.T) {
		got := FormatInternetEvidence([]string{"q"}, map[string]string{"q": "a"})
		assert.Equal(t, "Query: q\nResult: a", got)
	})

	t.Run("pairs follow question submission order", func(t *testing.T) {
		got := FormatInternetEvidence(
			[]string{"second topic", "first topic"},
			map[string]string{"first topic": "b", "second topic": "a"},
		)
		assert.Equal(t, "Query: second topic\nResult: a\n\nQuery: first topic\nResult: b", got)
	})

	t.Run("unanswered question is omitted", func(t *testing.T) {
		got := FormatInternetEvidence(
			[]string{"answered", "dropped"},
			map[string]string{"answered": "yes"},
		)
		assert.Equal(t, "Query: answered\nResult: yes", got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "No internet insights available.", FormatInternetEvidence(nil, nil))
	})
}
