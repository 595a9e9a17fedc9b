package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SessionTTL is how long a student session stays usable after creation.
const SessionTTL = time.Hour

type StudentSession struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	FormData       json.RawMessage
	ProfileSummary string
	CreatedAt      time.Time
}

// ExpiredAt reports whether the session has aged out at the given instant.
// The boundary is inclusive: a session exactly one hour old is expired.
func (s *StudentSession) ExpiredAt(now time.Time) bool {
	return now.Sub(s.CreatedAt) >= SessionTTL
}
