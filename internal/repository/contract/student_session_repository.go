package contract

import (
	"context"

	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StudentSessionRepository interface {
	Create(ctx context.Context, session *entity.StudentSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudentSession, error)
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.StudentSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
