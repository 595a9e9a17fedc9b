package unitofwork

import (
	"context"

	"ai-advising-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	StudentSessionRepository() contract.StudentSessionRepository
	RecommendationSessionRepository() contract.RecommendationSessionRepository
	AlumniRecordRepository() contract.AlumniRecordRepository
	AlumniEmbeddingRepository() contract.AlumniEmbeddingRepository
}
