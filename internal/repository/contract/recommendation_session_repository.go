package contract

import (
	"context"

	"ai-advising-be/internal/entity"

	"github.com/google/uuid"
)

type RecommendationSessionRepository interface {
	Create(ctx context.Context, session *entity.RecommendationSession) error
	Update(ctx context.Context, session *entity.RecommendationSession) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.RecommendationSession, error)
}
