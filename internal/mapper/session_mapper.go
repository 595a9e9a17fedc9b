package mapper

import (
	"encoding/json"
	"time"

	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// Student session mappers

func (m *SessionMapper) StudentSessionToEntity(s *model.StudentSession) *entity.StudentSession {
	if s == nil {
		return nil
	}
	return &entity.StudentSession{
		Id:             s.Id,
		SessionId:      s.SessionId,
		FormData:       json.RawMessage(s.FormData),
		ProfileSummary: s.ProfileSummary,
		CreatedAt:      s.CreatedAt,
	}
}

func (m *SessionMapper) StudentSessionToModel(s *entity.StudentSession) *model.StudentSession {
	if s == nil {
		return nil
	}
	return &model.StudentSession{
		Id:             s.Id,
		SessionId:      s.SessionId,
		FormData:       datatypes.JSON(s.FormData),
		ProfileSummary: s.ProfileSummary,
		CreatedAt:      s.CreatedAt,
	}
}

// Recommendation session mappers

func (m *SessionMapper) RecommendationSessionToEntity(s *model.RecommendationSession) *entity.RecommendationSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.RecommendationSession{
		Id:              s.Id,
		SessionId:       s.SessionId,
		SearchQueries:   json.RawMessage(s.SearchQueries),
		SearchResults:   json.RawMessage(s.SearchResults),
		Recommendations: json.RawMessage(s.Recommendations),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *SessionMapper) RecommendationSessionToModel(s *entity.RecommendationSession) *model.RecommendationSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.RecommendationSession{
		Id:              s.Id,
		SessionId:       s.SessionId,
		SearchQueries:   datatypes.JSON(s.SearchQueries),
		SearchResults:   datatypes.JSON(s.SearchResults),
		Recommendations: datatypes.JSON(s.Recommendations),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}
