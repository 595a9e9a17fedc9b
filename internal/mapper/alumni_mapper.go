package mapper

import (
	"encoding/json"
	"time"

	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type AlumniMapper struct{}

func NewAlumniMapper() *AlumniMapper {
	return &AlumniMapper{}
}

func (m *AlumniMapper) RecordToEntity(r *model.AlumniRecord) *entity.AlumniRecord {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.AlumniRecord{
		Id:        r.Id,
		Source:    r.Source,
		Content:   r.Content,
		Metadata:  json.RawMessage(r.Metadata),
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *AlumniMapper) RecordToModel(r *entity.AlumniRecord) *model.AlumniRecord {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.AlumniRecord{
		Id:        r.Id,
		Source:    r.Source,
		Content:   r.Content,
		Metadata:  datatypes.JSON(r.Metadata),
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *AlumniMapper) EmbeddingToEntity(e *model.AlumniEmbedding) *entity.AlumniEmbedding {
	if e == nil {
		return nil
	}
	return &entity.AlumniEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		AlumniRecordId: e.AlumniRecordId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *AlumniMapper) EmbeddingToModel(e *entity.AlumniEmbedding) *model.AlumniEmbedding {
	if e == nil {
		return nil
	}
	return &model.AlumniEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		AlumniRecordId: e.AlumniRecordId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}
