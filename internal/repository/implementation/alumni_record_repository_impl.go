package implementation

import (
	"context"
	"errors"

	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/mapper"
	"ai-advising-be/internal/model"
	"ai-advising-be/internal/repository/contract"
	"ai-advising-be/internal/repository/scope"
	"ai-advising-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlumniRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AlumniMapper
}

func NewAlumniRecordRepository(db *gorm.DB) contract.AlumniRecordRepository {
	return &AlumniRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewAlumniMapper(),
	}
}

func (r *AlumniRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AlumniRecordRepositoryImpl) Create(ctx context.Context, record *entity.AlumniRecord) error {
	m := r.mapper.RecordToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.RecordToEntity(m)
	return nil
}

func (r *AlumniRecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AlumniRecord, error) {
	var m model.AlumniRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RecordToEntity(&m), nil
}

func (r *AlumniRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AlumniRecord, error) {
	var models []*model.AlumniRecord
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AlumniRecord, len(models))
	for i, m := range models {
		entities[i] = r.mapper.RecordToEntity(m)
	}
	return entities, nil
}

func (r *AlumniRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.AlumniRecord{}).Count(&count).Error
	return count, err
}

func (r *AlumniRecordRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AlumniRecord{}, id).Error
}
