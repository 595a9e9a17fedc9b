package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type VerifySessionRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid"`
}

// Session verification outcomes delivered to the client.
const (
	SessionStatusValid    = "valid"
	SessionStatusExpired  = "expired"
	SessionStatusNotFound = "not_found"
)

type VerifySessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
}

// SearchBundle snapshots what the pipeline asked and what came back. It is
// persisted next to the recommendations so a stored set can be audited
// against its evidence.
type SearchBundle struct {
	Queries SearchBundleQueries `json:"queries"`
	Results SearchBundleResults `json:"results"`
}

type SearchBundleQueries struct {
	DatabaseQueries []string `json:"database_queries"`
	InternetQueries []string `json:"internet_queries"`
}

type SearchBundleResults struct {
	AlumniProfiles   map[string][]string `json:"alumni_profiles"`
	InternetInsights map[string]string   `json:"internet_insights"`
}

// RecommendationsResult carries the final recommendation payload. The JSON is
// stored and returned verbatim so cached and fresh responses are identical.
type RecommendationsResult struct {
	SessionId       uuid.UUID       `json:"session_id"`
	Recommendations json.RawMessage `json:"recommendations"`
	GeneratedAt     time.Time       `json:"generated_at"`
	FromCache       bool            `json:"from_cache"`
}
