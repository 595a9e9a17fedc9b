package service

import (
	"context"
	"fmt"

	"ai-advising-be/internal/pkg/logger"
	"ai-advising-be/internal/pkg/mailer"
	"ai-advising-be/pkg/events"
	pktNats "ai-advising-be/pkg/nats"
)

// NotifierService relays domain events from the bus to the advising office
// mailbox. It runs as a durable consumer so notifications survive restarts.
type NotifierService struct {
	subscriber  *pktNats.Subscriber
	mailer      mailer.IEmailService
	officeEmail string
	logger      logger.ILogger
}

func NewNotifierService(sub *pktNats.Subscriber, m mailer.IEmailService, officeEmail string, log logger.ILogger) *NotifierService {
	return &NotifierService{
		subscriber:  sub,
		mailer:      m,
		officeEmail: officeEmail,
		logger:      log,
	}
}

// Start begins listening to the event bus.
func (s *NotifierService) Start() {
	err := s.subscriber.Subscribe("events.RECOMMENDATIONS_READY", "advisor-notifier", s.handleReady)
	if err != nil {
		s.logger.Error("NotifierService", "Failed to start notifier subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotifierService", "Listening for RECOMMENDATIONS_READY events", nil)
}

func (s *NotifierService) handleReady(_ context.Context, event events.Event) error {
	sessionId, _ := event.Payload()["session_id"].(string)
	if sessionId == "" {
		s.logger.Warn("NotifierService", "RECOMMENDATIONS_READY event without session_id", nil)
		return nil
	}

	if err := s.mailer.SendRecommendationsReady(s.officeEmail, sessionId); err != nil {
		return fmt.Errorf("notify advising office: %w", err)
	}

	s.logger.Info("NotifierService", "Advising office notified", map[string]interface{}{
		"session_id": sessionId,
	})
	return nil
}
