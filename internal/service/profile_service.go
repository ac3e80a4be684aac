package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"

	"realestate-buyer-be/internal/constant"
	"realestate-buyer-be/internal/dto"
	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/pkg/logger"
	"realestate-buyer-be/internal/pkg/serverutils"
	"realestate-buyer-be/internal/repository/specification"
	"realestate-buyer-be/internal/repository/unitofwork"
	"realestate-buyer-be/pkg/agent"
	"realestate-buyer-be/pkg/workflow"
)

type IProfileService interface {
	Generate(ctx context.Context, sessionId uuid.UUID) (*dto.BuyerProfileResponse, error)
	Show(ctx context.Context, sessionId uuid.UUID) (*dto.BuyerProfileResponse, error)
}

type profileService struct {
	uowFactory       unitofwork.RepositoryFactory
	generator        *agent.ProfileGenerator
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewProfileService(
	uowFactory unitofwork.RepositoryFactory,
	generator *agent.ProfileGenerator,
	publisherService IPublisherService,
	log logger.ILogger,
) IProfileService {
	return &profileService{
		uowFactory:       uowFactory,
		generator:        generator,
		publisherService: publisherService,
		logger:           log,
	}
}

// Generate synthesizes the scored buyer profile and completes the session.
// Regenerating replaces the existing profile in place, a session only ever
// has one.
func (c *profileService) Generate(ctx context.Context, sessionId uuid.UUID) (*dto.BuyerProfileResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, constant.ErrSessionNotFound
	}

	preferences, err := uow.PreferenceRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderByConfidence{},
	)
	if err != nil {
		return nil, err
	}
	if len(preferences) == 0 {
		return nil, serverutils.NewApiError(
			constant.ErrCodeNoPreferences,
			"No preferences extracted yet, upload a transcript first",
		)
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "turn_number"},
		specification.OrderBy{Field: "created_at"},
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
	chat := make([]agent.ChatTurn, len(messages))
	for i, m := range messages {
		chat[i] = agent.ChatTurn{Role: m.Role, Content: m.Content}
	}

	// Synthesis failure degrades to an auto-scored profile inside the
	// generator, the session still completes
	result := c.generator.Generate(ctx, contexts, chat)
	confidence := overallConfidence(result.ScoredPreferences)

	existing, err := uow.BuyerProfileRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	profile := entity.BuyerProfile{
		Id:                uuid.New(),
		SessionId:         sessionId,
		ScoredPreferences: *result,
		GeneratedAt:       time.Now(),
	}
	if existing != nil {
		profile.Id = existing.Id
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	if existing != nil {
		err = uow.BuyerProfileRepository().Update(ctx, &profile)
	} else {
		err = uow.BuyerProfileRepository().Create(ctx, &profile)
	}
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	session.Status = workflow.StatusComplete
	session.OverallConfidence = &confidence
	if result.ProfileSummary != "" {
		summary := result.ProfileSummary
		session.Summary = &summary
	}
	session.UpdatedAt = time.Now()
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.publishActivity(ctx, sessionId, constant.EventProfileGenerated, map[string]interface{}{
		"profile_id":         profile.Id.String(),
		"overall_confidence": confidence,
		"readiness":          result.OverallReadiness,
	})

	c.logger.Info("ProfileService", "Buyer profile generated", map[string]interface{}{
		"session_id":         sessionId,
		"overall_confidence": confidence,
	})

	return dto.NewBuyerProfileResponse(profile.Id, sessionId, profile.ScoredPreferences, confidence, profile.GeneratedAt), nil
}

func (c *profileService) Show(ctx context.Context, sessionId uuid.UUID) (*dto.BuyerProfileResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, constant.ErrSessionNotFound
	}

	profile, err := uow.BuyerProfileRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, constant.ErrProfileNotFound
	}

	confidence := 0.0
	if session.OverallConfidence != nil {
		confidence = *session.OverallConfidence
	}
	return dto.NewBuyerProfileResponse(profile.Id, sessionId, profile.ScoredPreferences, confidence, profile.GeneratedAt), nil
}

// overallConfidence is the mean preference score scaled onto 0..1,
// rounded to two decimals.
func overallConfidence(scored []agent.ScoredPreference) float64 {
	if len(scored) == 0 {
		return 0
	}
	sum := 0
	for _, sp := range scored {
		sum += sp.Score
	}
	mean := float64(sum) / float64(len(scored))
	return math.Round(mean/10*100) / 100
}

func (c *profileService) publishActivity(ctx context.Context, sessionId uuid.UUID, eventType string, details map[string]interface{}) {
	payload, err := json.Marshal(dto.SessionActivityMessage{
		SessionId: sessionId,
		EventType: eventType,
		Details:   details,
	})
	if err != nil {
		c.logger.Warn("ProfileService", "Failed to marshal activity message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("ProfileService", "Failed to publish activity", map[string]interface{}{"error": err.Error()})
	}
}
