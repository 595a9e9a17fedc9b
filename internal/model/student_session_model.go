package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StudentSession struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"` // Public handle the client holds
	FormData       datatypes.JSON `gorm:"type:jsonb;not null"`
	ProfileSummary string         `gorm:"type:text;not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (StudentSession) TableName() string {
	return "student_sessions"
}
