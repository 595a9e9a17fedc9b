package implementation

import (
	"context"

	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/mapper"
	"ai-advising-be/internal/model"
	"ai-advising-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type AlumniEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AlumniMapper
}

func NewAlumniEmbeddingRepository(db *gorm.DB) contract.AlumniEmbeddingRepository {
	return &AlumniEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewAlumniMapper(),
	}
}

func (r *AlumniEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.AlumniEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.AlumniEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.EmbeddingToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update generated fields back onto the entities
	for i, m := range models {
		*embeddings[i] = *r.mapper.EmbeddingToEntity(m)
	}
	return nil
}

func (r *AlumniEmbeddingRepositoryImpl) DeleteByRecordId(ctx context.Context, recordId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("alumni_record_id = ?", recordId).Delete(&model.AlumniEmbedding{}).Error
}

// SearchSimilarWithScore is the dense retriever. Cosine distance in pgvector
// is 1 - cosine_similarity, so 1 - (embedding_value <=> query) is the score.
func (r *AlumniEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredAlumniDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.AlumniEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("alumni_embeddings").
		Select("alumni_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredAlumniDocument, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredAlumniDocument{
			Embedding: r.mapper.EmbeddingToEntity(&res.AlumniEmbedding),
			Score:     res.Similarity,
		}
	}
	return scored, nil
}

// SearchLexicalWithScore is the sparse retriever: english full-text search
// over the chunk documents ranked by ts_rank.
func (r *AlumniEmbeddingRepositoryImpl) SearchLexicalWithScore(ctx context.Context, query string, limit int) ([]*contract.ScoredAlumniDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.AlumniEmbedding
		Rank float64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Table("alumni_embeddings").
		Select("alumni_embeddings.*, ts_rank(to_tsvector('english', document), plainto_tsquery('english', ?)) as rank", query).
		Where("to_tsvector('english', document) @@ plainto_tsquery('english', ?)", query).
		Order("rank DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredAlumniDocument, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredAlumniDocument{
			Embedding: r.mapper.EmbeddingToEntity(&res.AlumniEmbedding),
			Score:     res.Rank,
		}
	}
	return scored, nil
}
