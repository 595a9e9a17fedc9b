package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionId filters by the public session handle.
type BySessionId struct {
	SessionId uuid.UUID
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// ByRecordId filters embeddings by their parent alumni record.
type ByRecordId struct {
	RecordId uuid.UUID
}

func (s ByRecordId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("alumni_record_id = ?", s.RecordId)
}

// BySource filters alumni records by their import source.
type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}
