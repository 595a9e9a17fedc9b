package implementation

import (
	"context"
	"errors"

	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/mapper"
	"ai-advising-be/internal/model"
	"ai-advising-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecommendationSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewRecommendationSessionRepository(db *gorm.DB) contract.RecommendationSessionRepository {
	return &RecommendationSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *RecommendationSessionRepositoryImpl) Create(ctx context.Context, session *entity.RecommendationSession) error {
	m := r.mapper.RecommendationSessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.RecommendationSessionToEntity(m)
	return nil
}

func (r *RecommendationSessionRepositoryImpl) Update(ctx context.Context, session *entity.RecommendationSession) error {
	m := r.mapper.RecommendationSessionToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.RecommendationSessionToEntity(m)
	return nil
}

func (r *RecommendationSessionRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.RecommendationSession, error) {
	var m model.RecommendationSession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RecommendationSessionToEntity(&m), nil
}
