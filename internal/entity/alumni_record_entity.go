package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AlumniRecord struct {
	Id        uuid.UUID
	Source    string
	Content   string
	Metadata  json.RawMessage
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type AlumniEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	AlumniRecordId uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
}
