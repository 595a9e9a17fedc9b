// Package search adapts the alumni embedding repository to the fusion
// engine's Retriever contract.
package search

import (
	"context"
	"fmt"

	"ai-advising-be/internal/repository/contract"
	"ai-advising-be/internal/repository/unitofwork"
	"ai-advising-be/pkg/embedding"
	"ai-advising-be/pkg/search/fusion"
)

// DenseRetriever embeds the query and runs pgvector cosine search.
type DenseRetriever struct {
	uowFactory unitofwork.RepositoryFactory
	provider   embedding.EmbeddingProvider
}

func NewDenseRetriever(uowFactory unitofwork.RepositoryFactory, provider embedding.EmbeddingProvider) *DenseRetriever {
	return &DenseRetriever{uowFactory: uowFactory, provider: provider}
}

func (r *DenseRetriever) Retrieve(ctx context.Context, query string, topK int) ([]fusion.ScoredDocument, error) {
	res, err := r.provider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.AlumniEmbeddingRepository().SearchSimilarWithScore(ctx, res.Embedding.Values, topK)
	if err != nil {
		return nil, fmt.Errorf("dense search: %w", err)
	}
	return toDocuments(scored), nil
}

// SparseRetriever runs Postgres full-text search over the chunk documents.
type SparseRetriever struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSparseRetriever(uowFactory unitofwork.RepositoryFactory) *SparseRetriever {
	return &SparseRetriever{uowFactory: uowFactory}
}

func (r *SparseRetriever) Retrieve(ctx context.Context, query string, topK int) ([]fusion.ScoredDocument, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.AlumniEmbeddingRepository().SearchLexicalWithScore(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("sparse search: %w", err)
	}
	return toDocuments(scored), nil
}

func toDocuments(scored []*contract.ScoredAlumniDocument) []fusion.ScoredDocument {
	docs := make([]fusion.ScoredDocument, len(scored))
	for i, s := range scored {
		docs[i] = fusion.ScoredDocument{
			Content: s.Embedding.Document,
			Score:   s.Score,
		}
	}
	return docs
}
