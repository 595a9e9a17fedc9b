package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-advising-be/internal/dto"
	"ai-advising-be/internal/entity"
	"ai-advising-be/internal/pkg/logger"
	"ai-advising-be/internal/repository/memory"
	"ai-advising-be/internal/repository/unitofwork"
	"ai-advising-be/pkg/events"
	"ai-advising-be/pkg/llm"
	pktNats "ai-advising-be/pkg/nats"
	"ai-advising-be/pkg/prompts"

	"github.com/google/uuid"
)

type IProfileService interface {
	CreateSession(ctx context.Context, req *dto.StudentInfoRequest) (*dto.CreateProfileResponse, error)
}

type profileService struct {
	uowFactory     unitofwork.RepositoryFactory
	provider       llm.LLMProvider
	sessionCache   *memory.SessionCache
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewProfileService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	sessionCache *memory.SessionCache,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IProfileService {
	return &profileService{
		uowFactory:     uowFactory,
		provider:       provider,
		sessionCache:   sessionCache,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// CreateSession summarizes the intake form and persists a fresh session.
func (s *profileService) CreateSession(ctx context.Context, req *dto.StudentInfoRequest) (*dto.CreateProfileResponse, error) {
	summary, err := s.provider.Generate(ctx, prompts.StudentSummary(formatIntakeContext(req)))
	if err != nil {
		return nil, fmt.Errorf("summarize profile: %w", err)
	}

	formData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal form data: %w", err)
	}

	session := entity.StudentSession{
		Id:             uuid.New(),
		SessionId:      uuid.New(),
		FormData:       formData,
		ProfileSummary: summary,
		CreatedAt:      time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.StudentSessionRepository().Create(ctx, &session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.sessionCache.Save(&session)

	// Notification is auxiliary; log and move on if the bus is down
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "SESSION_CREATED",
			Data: map[string]interface{}{
				"session_id": session.SessionId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ProfileService", "Failed to publish SESSION_CREATED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.CreateProfileResponse{
		SessionId:      session.SessionId,
		ProfileSummary: summary,
	}, nil
}

// intakeFields fixes the order the form fields appear in the prompt context.
var intakeFields = []struct {
	label string
	value func(*dto.StudentInfoRequest) string
}{
	{"Academic Interests", func(r *dto.StudentInfoRequest) string { return r.AcademicInterests }},
	{"Career Paths", func(r *dto.StudentInfoRequest) string { return r.CareerPaths }},
	{"Course Preferences", func(r *dto.StudentInfoRequest) string { return r.CoursePreferences }},
	{"Experience", func(r *dto.StudentInfoRequest) string { return r.Experience }},
	{"Skills", func(r *dto.StudentInfoRequest) string { return r.Skills }},
	{"Extracurriculars", func(r *dto.StudentInfoRequest) string { return r.Extracurriculars }},
	{"Decision Factors", func(r *dto.StudentInfoRequest) string { return r.DecisionFactors }},
	{"Advisor Notes", func(r *dto.StudentInfoRequest) string { return r.AdvisorNotes }},
}

func formatIntakeContext(req *dto.StudentInfoRequest) string {
	var b strings.Builder
	for _, field := range intakeFields {
		fmt.Fprintf(&b, "%s: %s\n", field.label, field.value(req))
	}
	return strings.TrimRight(b.String(), "\n")
}
