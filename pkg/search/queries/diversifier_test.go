package queries

import (
	"context"
	"errors"
	"testing"

	"ai-advising-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedProvider struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (s *scriptedProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func (s *scriptedProvider) GenerateStructured(ctx context.Context, prompt string, _ *llm.StructuredSchema, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, prompt, opts...)
}

func TestDatabaseQueries(t *testing.T) {
	t.Run("parses four lines", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{
			"machine learning engineer computer science\n" +
				"software roles using statistics and programming\n" +
				"collaborative research driven technology teams\n" +
				"computational skills applied to healthcare analytics",
		}}
		d := NewDiversifier(provider, 0.7)

		got, err := d.DatabaseQueries(context.Background(), "summary")
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "machine learning engineer computer science", got[0])
	})

	t.Run("drops blank lines and trims whitespace", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{
			"  one  \n\ntwo\n \nthree\nfour\n",
		}}
		d := NewDiversifier(provider, 0.7)

		got, err := d.DatabaseQueries(context.Background(), "summary")
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three", "four"}, got)
	})

	t.Run("truncates extra lines to four", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{"a\nb\nc\nd\ne\nf"}}
		d := NewDiversifier(provider, 0.7)

		got, err := d.DatabaseQueries(context.Background(), "summary")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	})

	t.Run("too few lines is malformed", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{"only\nthree\nqueries"}}
		d := NewDiversifier(provider, 0.7)

		_, err := d.DatabaseQueries(context.Background(), "summary")
		var malformed *llm.MalformedGenerationError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("provider error passes through", func(t *testing.T) {
		provider := &scriptedProvider{err: errors.New("rate limited")}
		d := NewDiversifier(provider, 0.7)

		_, err := d.DatabaseQueries(context.Background(), "summary")
		require.Error(t, err)
		var malformed *llm.MalformedGenerationError
		assert.False(t, errors.As(err, &malformed))
	})
}

func TestInternetQueries(t *testing.T) {
	t.Run("splits on blank line and strips quotes", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{
			"\"Find trends and opportunities in data science, including emerging roles.\"\n\n" +
				"\"Find names and stories of notable professionals who excelled in data science.\"",
		}}
		d := NewDiversifier(provider, 0.7)

		got, err := d.InternetQueries(context.Background(), "summary")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Find trends and opportunities in data science, including emerging roles.", got[0])
		assert.Equal(t, "Find names and stories of notable professionals who excelled in data science.", got[1])
	})

	t.Run("truncates extras to two", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{"one\n\ntwo\n\nthree"}}
		d := NewDiversifier(provider, 0.7)

		got, err := d.InternetQueries(context.Background(), "summary")
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, got)
	})

	t.Run("single segment is malformed", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{"just one query without separator"}}
		d := NewDiversifier(provider, 0.7)

		_, err := d.InternetQueries(context.Background(), "summary")
		var malformed *llm.MalformedGenerationError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestExpand(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"a\nb\nc\nd",
		"trend query\n\nfigure query",
	}}
	d := NewDiversifier(provider, 0.7)

	set, err := d.Expand(context.Background(), "summary")
	require.NoError(t, err)
	assert.Len(t, set.Database, 4)
	assert.Equal(t, []string{"trend query", "figure query"}, set.Internet)
	// both prompts carry the summary
	require.Len(t, provider.prompts, 2)
	for _, p := range provider.prompts {
		assert.Contains(t, p, "summary")
	}
}
