package service

import (
	"context"

	"github.com/google/uuid"

	"realestate-buyer-be/internal/pkg/logger"
	"realestate-buyer-be/pkg/events"
	pktNats "realestate-buyer-be/pkg/nats"
)

// ActivityDelivery pushes real-time session activity to connected
// watchers. Implemented by the websocket hub.
type ActivityDelivery interface {
	Send(sessionID uuid.UUID, eventType string, payload map[string]interface{})
}

// NotifierService bridges the NATS event bus to live websocket watchers.
type NotifierService struct {
	subscriber *pktNats.Subscriber
	delivery   ActivityDelivery
	logger     logger.ILogger
}

func NewNotifierService(sub *pktNats.Subscriber, delivery ActivityDelivery, log logger.ILogger) *NotifierService {
	return &NotifierService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the session event bus.
func (s *NotifierService) Start() {
	err := s.subscriber.Subscribe("events.session.>", "session-notifier-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotifierService", "Failed to start activity subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotifierService", "Notifier started, listening to events.session.>", nil)
}

func (s *NotifierService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	rawId, _ := payload["session_id"].(string)
	sessionId, err := uuid.Parse(rawId)
	if err != nil {
		// Malformed event, dropping it beats endless redelivery
		s.logger.Warn("NotifierService", "Event without usable session_id", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return nil
	}

	if s.delivery != nil {
		s.delivery.Send(sessionId, event.EventType(), payload)
	}
	return nil
}
