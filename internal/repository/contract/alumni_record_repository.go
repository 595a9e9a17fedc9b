package contract

import (
	"context"

	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AlumniRecordRepository interface {
	Create(ctx context.Context, record *entity.AlumniRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AlumniRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AlumniRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
