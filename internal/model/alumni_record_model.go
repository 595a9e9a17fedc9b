package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AlumniRecord struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Source    string         `gorm:"type:text;not null"` // import batch or file the record came from
	Content   string         `gorm:"type:text;not null"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (AlumniRecord) TableName() string {
	return "alumni_records"
}
