package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecommendationSession caches the generated recommendation set, one row per
// student session, together with the queries and evidence that produced it.
type RecommendationSession struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	SearchQueries   datatypes.JSON `gorm:"type:jsonb"`
	SearchResults   datatypes.JSON `gorm:"type:jsonb"`
	Recommendations datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (RecommendationSession) TableName() string {
	return "recommendation_sessions"
}
