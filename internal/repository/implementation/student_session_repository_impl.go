package implementation

import (
	"context"
	"errors"

	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/mapper"
	"ai-advising-be/internal/model"
	"ai-advising-be/internal/repository/contract"
	"ai-advising-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewStudentSessionRepository(db *gorm.DB) contract.StudentSessionRepository {
	return &StudentSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *StudentSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StudentSessionRepositoryImpl) Create(ctx context.Context, session *entity.StudentSession) error {
	m := r.mapper.StudentSessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.StudentSessionToEntity(m)
	return nil
}

func (r *StudentSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudentSession, error) {
	var m model.StudentSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.StudentSessionToEntity(&m), nil
}

func (r *StudentSessionRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.StudentSession, error) {
	return r.FindOne(ctx, specification.BySessionId{SessionId: sessionId})
}

func (r *StudentSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.StudentSession{}).Count(&count).Error
	return count, err
}
