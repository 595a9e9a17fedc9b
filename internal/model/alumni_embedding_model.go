package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// AlumniEmbedding is one embedded chunk of an alumni record. Dense search
// runs over embedding_value; sparse search runs a tsvector over document.
type AlumniEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document       string          `gorm:"type:text;not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(1536)"`
	AlumniRecordId uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex     int             `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (AlumniEmbedding) TableName() string {
	return "alumni_embeddings"
}
