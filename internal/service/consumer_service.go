package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"realestate-buyer-be/internal/dto"
	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/repository/unitofwork"
	"realestate-buyer-be/pkg/events"
	pktNats "realestate-buyer-be/pkg/nats"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process activity topic, writes the audit
// trail row, then fans the event out to the NATS bus for live listeners.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SessionActivityMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal activity message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	event := entity.SessionEvent{
		Id:        uuid.New(),
		SessionId: payload.SessionId,
		EventType: payload.EventType,
		Details:   payload.Details,
		CreatedAt: time.Now(),
	}
	if err := uow.SessionEventRepository().Create(ctx, &event); err != nil {
		log.Printf("[ERROR] Failed to persist session event %s for session %s: %v", payload.EventType, payload.SessionId, err)
		msg.Nack() // Retriable
		return
	}

	if cs.eventPublisher != nil {
		evt := events.NewSessionActivity(payload.EventType, payload.SessionId.String(), payload.Details)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			// The audit row is already committed, live delivery is best effort
			log.Printf("[WARN] Failed to publish %s to NATS: %v", payload.EventType, err)
		}
	}

	msg.Ack()
}
