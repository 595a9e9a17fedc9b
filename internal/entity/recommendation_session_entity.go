package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type RecommendationSession struct {
	Id              uuid.UUID
	SessionId       uuid.UUID
	SearchQueries   json.RawMessage
	SearchResults   json.RawMessage
	Recommendations json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
