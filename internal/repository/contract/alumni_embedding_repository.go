package contract

import (
	"context"

	"ai-advising-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredAlumniDocument is a retrieval hit with its relevance score. Dense
// hits carry cosine similarity, sparse hits carry ts_rank; fusion only cares
// about relative order within one retriever.
type ScoredAlumniDocument struct {
	Embedding *entity.AlumniEmbedding
	Score     float64
}

type AlumniEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.AlumniEmbedding) error
	DeleteByRecordId(ctx context.Context, recordId uuid.UUID) error

	// SearchSimilarWithScore runs dense retrieval: pgvector cosine distance
	// over embedding_value, scored as 1 - distance.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredAlumniDocument, error)

	// SearchLexicalWithScore runs sparse retrieval: Postgres full text over
	// document with english configuration, scored by ts_rank.
	SearchLexicalWithScore(ctx context.Context, query string, limit int) ([]*ScoredAlumniDocument, error)
}
