// Package fusion implements hybrid retrieval over the alumni store: several
// retrievers answer the same query with ranked lists, and Reciprocal Rank
// Fusion merges them into a single ranking.
package fusion

import (
	"context"
	"sort"
)

// rrfK dampens the influence of lower ranks. The document at 0-indexed rank r
// contributes 1/(r+rrfK) to its fused score.
const rrfK = 60.0

// DefaultTopN is how many fused documents survive per query.
const DefaultTopN = 5

// DefaultTopK is how many candidates each retriever contributes per query.
const DefaultTopK = 5

// ScoredDocument is one retriever hit. Content is the join key during fusion:
// the same text returned by two retrievers is one document.
type ScoredDocument struct {
	Content string
	Score   float64
}

// Retriever answers a query with a scored list, ordered or not; fusion sorts
// each list by descending score before assigning ranks.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]ScoredDocument, error)
}

// Fuse merges ranked lists with Reciprocal Rank Fusion and returns the top
// topN document contents by fused score. List order matters only for ties:
// the first list to surface a document fixes its position among equals.
func Fuse(lists [][]ScoredDocument, topN int) []string {
	if topN <= 0 {
		topN = DefaultTopN
	}

	type fused struct {
		content string
		score   float64
		seen    int
	}

	byContent := make(map[string]*fused)
	order := 0

	for _, list := range lists {
		ranked := make([]ScoredDocument, len(list))
		copy(ranked, list)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})

		for rank, doc := range ranked {
			entry, ok := byContent[doc.Content]
			if !ok {
				entry = &fused{content: doc.Content, seen: order}
				byContent[doc.Content] = entry
				order++
			}
			entry.score += 1.0 / (float64(rank) + rrfK)
		}
	}

	merged := make([]*fused, 0, len(byContent))
	for _, entry := range byContent {
		merged = append(merged, entry)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].score != merged[j].score {
			return merged[i].score > merged[j].score
		}
		return merged[i].seen < merged[j].seen
	})

	if len(merged) > topN {
		merged = merged[:topN]
	}
	out := make([]string, len(merged))
	for i, entry := range merged {
		out[i] = entry.content
	}
	return out
}
