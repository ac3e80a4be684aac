package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"realestate-buyer-be/internal/constant"
	"realestate-buyer-be/internal/dto"
	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/pkg/logger"
	"realestate-buyer-be/internal/repository/specification"
	"realestate-buyer-be/internal/repository/unitofwork"
	"realestate-buyer-be/pkg/agent"
	"realestate-buyer-be/pkg/llm"
	"realestate-buyer-be/pkg/workflow"
)

const (
	strategyGuidedDiscovery = "guided_discovery"
	strategyFallback        = "fallback"
)

// PreparedTurn carries everything StreamReply needs after the user message
// has been committed. The user message is durable even if generation fails.
type PreparedTurn struct {
	SessionId   uuid.UUID
	UserMessage *dto.ChatMessageResponse

	history     []agent.ChatTurn
	preferences []agent.PreferenceContext
	nextTurn    int
}

type IChatService interface {
	History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	PrepareTurn(ctx context.Context, sessionId uuid.UUID, content string) (*PreparedTurn, error)
	StreamReply(ctx context.Context, turn *PreparedTurn, emit llm.TokenFunc) (*dto.ChatMessageResponse, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	strategist       *agent.ChatStrategist
	publisherService IPublisherService
	prefCache        *gocache.Cache
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	strategist *agent.ChatStrategist,
	publisherService IPublisherService,
	prefCache *gocache.Cache,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		strategist:       strategist,
		publisherService: publisherService,
		prefCache:        prefCache,
		logger:           log,
	}
}

func (c *chatService) History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, constant.ErrSessionNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "turn_number"},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		res[i] = chatMessageToResponse(m)
	}
	return res, nil
}

// PrepareTurn persists the user message and activates the chat phase in its
// own unit of work. Whatever happens to generation afterwards, this turn is
// already part of the conversation.
func (c *chatService) PrepareTurn(ctx context.Context, sessionId uuid.UUID, content string) (*PreparedTurn, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, constant.ErrSessionNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	count, err := uow.ChatMessageRepository().Count(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	userMessage := entity.ChatMessage{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Role:       constant.ChatRoleUser,
		Content:    content,
		TurnNumber: int(count) + 1,
		CreatedAt:  time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		uow.Rollback()
		return nil, err
	}

	if session.Status.NeedsChatActivation() {
		session.Status = workflow.StatusChatActive
		session.UpdatedAt = time.Now()
		if err := uow.SessionRepository().Update(ctx, session); err != nil {
			uow.Rollback()
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	history, err := c.loadHistory(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	preferences, err := c.preferenceContexts(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	return &PreparedTurn{
		SessionId:   sessionId,
		UserMessage: chatMessageToResponse(&userMessage),
		history:     history,
		preferences: preferences,
		nextTurn:    userMessage.TurnNumber + 1,
	}, nil
}

// StreamReply generates the assistant reply, emitting tokens as they
// arrive, then persists the full reply in a fresh unit of work.
func (c *chatService) StreamReply(ctx context.Context, turn *PreparedTurn, emit llm.TokenFunc) (*dto.ChatMessageResponse, error) {
	var reply strings.Builder
	collect := func(token string) error {
		reply.WriteString(token)
		return emit(token)
	}

	if err := c.strategist.StreamReply(ctx, turn.history, turn.preferences, collect); err != nil {
		// Only a broken emit sink lands here, the strategist degrades
		// provider failures to the fallback reply on its own
		return nil, err
	}

	strategy := strategyGuidedDiscovery
	if reply.String() == agent.FallbackReply {
		strategy = strategyFallback
	}

	assistantMessage := entity.ChatMessage{
		Id:           uuid.New(),
		SessionId:    turn.SessionId,
		Role:         constant.ChatRoleAssistant,
		Content:      reply.String(),
		StrategyUsed: &strategy,
		TurnNumber:   turn.nextTurn,
		CreatedAt:    time.Now(),
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMessage); err != nil {
		return nil, err
	}

	c.publishActivity(ctx, turn.SessionId, constant.EventChatTurn, map[string]interface{}{
		"turn_number": assistantMessage.TurnNumber,
		"strategy":    strategy,
	})

	return chatMessageToResponse(&assistantMessage), nil
}

func (c *chatService) loadHistory(ctx context.Context, sessionId uuid.UUID) ([]agent.ChatTurn, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "turn_number"},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]agent.ChatTurn, len(messages))
	for i, m := range messages {
		history[i] = agent.ChatTurn{Role: m.Role, Content: m.Content}
	}
	return history, nil
}

// preferenceContexts returns the session's preferences ready for model
// context, cached until the next transcript upload or TTL expiry.
func (c *chatService) preferenceContexts(ctx context.Context, sessionId uuid.UUID) ([]agent.PreferenceContext, error) {
	key := sessionId.String()
	if cached, found := c.prefCache.Get(key); found {
		if contexts, ok := cached.([]agent.PreferenceContext); ok {
			return contexts, nil
		}
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	preferences, err := uow.PreferenceRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderByConfidence{},
	)
	if err != nil {
		return nil, err
	}

	contexts := make([]agent.PreferenceContext, len(preferences))
	for i, p := range preferences {
		contexts[i] = agent.PreferenceContext{
			Category:    p.Category,
			Value:       p.Value,
			Confidence:  p.Confidence,
			Source:      p.Source,
			IsConfirmed: p.IsConfirmed,
		}
	}
	c.prefCache.Set(key, contexts, gocache.DefaultExpiration)
	return contexts, nil
}

func (c *chatService) publishActivity(ctx context.Context, sessionId uuid.UUID, eventType string, details map[string]interface{}) {
	payload, err := json.Marshal(dto.SessionActivityMessage{
		SessionId: sessionId,
		EventType: eventType,
		Details:   details,
	})
	if err != nil {
		c.logger.Warn("ChatService", "Failed to marshal activity message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("ChatService", "Failed to publish activity", map[string]interface{}{"error": err.Error()})
	}
}

func chatMessageToResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:           m.Id,
		SessionId:    m.SessionId,
		Role:         m.Role,
		Content:      m.Content,
		StrategyUsed: m.StrategyUsed,
		TurnNumber:   m.TurnNumber,
		CreatedAt:    m.CreatedAt,
	}
}
