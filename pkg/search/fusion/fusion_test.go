package fusion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuse(t *testing.T) {
	t.Run("merges results from multiple retrievers", func(t *testing.T) {
		dense := []ScoredDocument{
			{Content: "alice, cs major, ml engineer", Score: 0.92},
			{Content: "bob, math major, quant", Score: 0.85},
		}
		sparse := []ScoredDocument{
			{Content: "alice, cs major, ml engineer", Score: 3.1},
			{Content: "carol, physics major, data scientist", Score: 2.4},
		}

		got := Fuse([][]ScoredDocument{dense, sparse}, 10)

		require.Len(t, got, 3)
		// alice is rank 0 in both lists: 1/60 + 1/60
		assert.Equal(t, "alice, cs major, ml engineer", got[0])
	})

	t.Run("rank zero contributes one sixtieth", func(t *testing.T) {
		single := []ScoredDocument{{Content: "doc", Score: 1.0}}
		got := Fuse([][]ScoredDocument{single}, 5)
		require.Len(t, got, 1)

		// Verify the accumulation by pitting a twice-seen doc against a
		// once-seen one: 2/60 must beat 1/60 + 1/61.
		listA := []ScoredDocument{
			{Content: "shared", Score: 0.9},
			{Content: "solo", Score: 0.8},
		}
		listB := []ScoredDocument{
			{Content: "solo", Score: 0.7},
			{Content: "shared", Score: 0.6},
		}
		// shared: 1/60 + 1/61, solo: 1/61 + 1/60 -> exact tie, first-seen wins
		got = Fuse([][]ScoredDocument{listA, listB}, 5)
		assert.Equal(t, []string{"shared", "solo"}, got)
	})

	t.Run("ties break by first seen order", func(t *testing.T) {
		dense := []ScoredDocument{{Content: "A", Score: 0.5}}
		sparse := []ScoredDocument{{Content: "B", Score: 9.9}}

		// Both score exactly 1/60; the dense list registered A first.
		got := Fuse([][]ScoredDocument{dense, sparse}, 5)
		assert.Equal(t, []string{"A", "B"}, got)
	})

	t.Run("sorts each list by score before ranking", func(t *testing.T) {
		unordered := []ScoredDocument{
			{Content: "low", Score: 0.1},
			{Content: "high", Score: 0.9},
		}
		got := Fuse([][]ScoredDocument{unordered}, 5)
		assert.Equal(t, []string{"high", "low"}, got)
	})

	t.Run("truncates to topN", func(t *testing.T) {
		var list []ScoredDocument
		for _, c := range []string{"a", "b", "c", "d", "e", "f", "g"} {
			list = append(list, ScoredDocument{Content: c, Score: float64(len(c))})
		}
		got := Fuse([][]ScoredDocument{list}, 5)
		assert.Len(t, got, 5)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, Fuse(nil, 5))
		assert.Empty(t, Fuse([][]ScoredDocument{{}, {}}, 5))
	})

	t.Run("single retriever preserves its ranking", func(t *testing.T) {
		list := []ScoredDocument{
			{Content: "first", Score: 0.9},
			{Content: "second", Score: 0.5},
			{Content: "third", Score: 0.2},
		}
		got := Fuse([][]ScoredDocument{list}, 5)
		assert.Equal(t, []string{"first", "second", "third"}, got)
	})
}

type stubRetriever struct {
	docs map[string][]ScoredDocument
	err  error
}

func (s *stubRetriever) Retrieve(_ context.Context, query string, _ int) ([]ScoredDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.docs[query], nil
}

type flakyRetriever struct {
	failOn string
	docs   map[string][]ScoredDocument
}

func (f *flakyRetriever) Retrieve(_ context.Context, query string, _ int) ([]ScoredDocument, error) {
	if query == f.failOn {
		return nil, errors.New("connection reset")
	}
	return f.docs[query], nil
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 120*time.Second, cfg.GroupTimeout)
}

func TestEngineSearchAll(t *testing.T) {
	cfg := Config{TopK: 5, TopN: 5, GroupTimeout: 2 * time.Second}

	t.Run("fuses every query", func(t *testing.T) {
		dense := &stubRetriever{docs: map[string][]ScoredDocument{
			"q1": {{Content: "d1", Score: 0.9}},
			"q2": {{Content: "d2", Score: 0.8}},
		}}
		sparse := &stubRetriever{docs: map[string][]ScoredDocument{
			"q1": {{Content: "d1", Score: 2.0}},
		}}

		engine := NewEngine(cfg, dense, sparse)
		res, err := engine.SearchAll(context.Background(), []string{"q1", "q2"})
		require.NoError(t, err)

		assert.Equal(t, []string{"d1"}, res.Documents["q1"])
		assert.Equal(t, []string{"d2"}, res.Documents["q2"])
		assert.Empty(t, res.Failed)
	})

	t.Run("one failing query does not abort the batch", func(t *testing.T) {
		flaky := &flakyRetriever{
			failOn: "bad",
			docs: map[string][]ScoredDocument{
				"good": {{Content: "doc", Score: 0.7}},
			},
		}

		engine := NewEngine(cfg, flaky)
		res, err := engine.SearchAll(context.Background(), []string{"good", "bad"})
		require.NoError(t, err)

		assert.Equal(t, []string{"doc"}, res.Documents["good"])
		require.Contains(t, res.Failed, "bad")
		assert.NotContains(t, res.Documents, "bad")
	})

	t.Run("no retrievers is an error", func(t *testing.T) {
		engine := NewEngine(cfg)
		_, err := engine.SearchAll(context.Background(), []string{"q"})
		assert.Error(t, err)
	})

	t.Run("empty query batch", func(t *testing.T) {
		engine := NewEngine(cfg, &stubRetriever{})
		res, err := engine.SearchAll(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, res.Documents)
		assert.Empty(t, res.Failed)
	})
}
