package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateAlumniRecordRequest struct {
	Source   string          `json:"source" validate:"required"`
	Content  string          `json:"content" validate:"required"`
	Metadata json.RawMessage `json:"metadata"`
}

type CreateAlumniRecordResponse struct {
	Id uuid.UUID `json:"id"`
}

type AlumniRecordResponse struct {
	Id        uuid.UUID       `json:"id"`
	Source    string          `json:"source"`
	Content   string          `json:"content"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PublishEmbedAlumniMessage is the queue payload telling the consumer to
// (re)embed one alumni record.
type PublishEmbedAlumniMessage struct {
	RecordId uuid.UUID `json:"record_id"`
}
