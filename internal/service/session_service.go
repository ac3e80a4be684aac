package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

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

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	List(ctx context.Context) ([]*dto.SessionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	UploadTranscript(ctx context.Context, req *dto.UploadTranscriptRequest) (*dto.UploadTranscriptResponse, error)
	ListPreferences(ctx context.Context, sessionId uuid.UUID) ([]*dto.PreferenceResponse, error)
	ListEvents(ctx context.Context, sessionId uuid.UUID) ([]*dto.SessionEventResponse, error)
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	parser           *agent.TranscriptParser
	publisherService IPublisherService
	prefCache        *gocache.Cache
	logger           logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	parser *agent.TranscriptParser,
	publisherService IPublisherService,
	prefCache *gocache.Cache,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		parser:           parser,
		publisherService: publisherService,
		prefCache:        prefCache,
		logger:           log,
	}
}

func (c *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session := entity.Session{
		Id:        uuid.New(),
		Status:    workflow.StatusParsing,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if name := strings.TrimSpace(req.BuyerName); name != "" {
		session.BuyerName = &name
	}

	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	c.logger.Info("SessionService", "Session created", map[string]interface{}{"session_id": session.Id})
	return sessionToResponse(&session), nil
}

func (c *sessionService) List(ctx context.Context) ([]*dto.SessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionResponse, len(sessions))
	for i, s := range sessions {
		res[i] = sessionToResponse(s)
	}
	return res, nil
}

func (c *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, constant.ErrSessionNotFound
	}
	return sessionToResponse(session), nil
}

// UploadTranscript stores the raw transcript, runs preference extraction and
// moves the session to parsed. Extraction failure is not fatal, the session
// still advances with zero preferences.
func (c *sessionService) UploadTranscript(ctx context.Context, req *dto.UploadTranscriptRequest) (*dto.UploadTranscriptResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, constant.ErrSessionNotFound
	}

	// Character count, not bytes; multibyte transcripts must not slip past
	if utf8.RuneCountInString(strings.TrimSpace(req.RawText)) < constant.MinTranscriptLength {
		return nil, serverutils.NewApiError(
			constant.ErrCodeTranscriptTooShort,
			fmt.Sprintf("Transcript must be at least %d characters", constant.MinTranscriptLength),
		)
	}

	// The model call happens before the transaction opens so a slow
	// provider never holds a connection.
	result := c.parser.Parse(ctx, req.RawText)

	transcript := entity.Transcript{
		Id:         uuid.New(),
		SessionId:  session.Id,
		RawText:    req.RawText,
		UploadedAt: time.Now(),
	}

	preferences := make([]*entity.Preference, 0, len(result.Preferences))
	for _, p := range result.Preferences {
		confidence := p.Confidence
		if !constant.IsValidConfidence(confidence) {
			confidence = constant.ConfidenceLow
		}
		preferences = append(preferences, &entity.Preference{
			Id:         uuid.New(),
			SessionId:  session.Id,
			Category:   p.Category,
			Value:      p.Value,
			Confidence: confidence,
			Source:     constant.SourceTranscript,
			CreatedAt:  time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	if err := uow.TranscriptRepository().Create(ctx, &transcript); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.PreferenceRepository().CreateBatch(ctx, preferences); err != nil {
		uow.Rollback()
		return nil, err
	}

	if session.Status.CanAdvance(workflow.StatusParsed) {
		session.Status = workflow.StatusParsed
	}
	if result.Summary != "" {
		summary := result.Summary
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

	// New transcript invalidates whatever the chat pipeline has cached
	c.prefCache.Delete(session.Id.String())

	c.publishActivity(ctx, session.Id, constant.EventTranscriptParsed, map[string]interface{}{
		"transcript_id":     transcript.Id.String(),
		"preferences_count": len(preferences),
	})

	c.logger.Info("SessionService", "Transcript parsed", map[string]interface{}{
		"session_id":        session.Id,
		"preferences_count": len(preferences),
	})

	return &dto.UploadTranscriptResponse{
		TranscriptId:     transcript.Id,
		SessionId:        session.Id,
		Status:           session.Status.String(),
		PreferencesCount: len(preferences),
	}, nil
}

func (c *sessionService) ListPreferences(ctx context.Context, sessionId uuid.UUID) ([]*dto.PreferenceResponse, error) {
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

	res := make([]*dto.PreferenceResponse, len(preferences))
	for i, p := range preferences {
		res[i] = &dto.PreferenceResponse{
			Id:          p.Id,
			Category:    p.Category,
			Value:       p.Value,
			Confidence:  p.Confidence,
			Source:      p.Source,
			IsConfirmed: p.IsConfirmed,
			CreatedAt:   p.CreatedAt,
		}
	}
	return res, nil
}

func (c *sessionService) ListEvents(ctx context.Context, sessionId uuid.UUID) ([]*dto.SessionEventResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, constant.ErrSessionNotFound
	}

	events, err := uow.SessionEventRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionEventResponse, len(events))
	for i, e := range events {
		res[i] = &dto.SessionEventResponse{
			Id:        e.Id,
			SessionId: e.SessionId,
			EventType: e.EventType,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}
	return res, nil
}

func (c *sessionService) publishActivity(ctx context.Context, sessionId uuid.UUID, eventType string, details map[string]interface{}) {
	payload, err := json.Marshal(dto.SessionActivityMessage{
		SessionId: sessionId,
		EventType: eventType,
		Details:   details,
	})
	if err != nil {
		c.logger.Warn("SessionService", "Failed to marshal activity message", map[string]interface{}{"error": err.Error()})
		return
	}
	// Activity is auxiliary, the request never fails on it
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("SessionService", "Failed to publish activity", map[string]interface{}{"error": err.Error()})
	}
}

func sessionToResponse(s *entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:                s.Id,
		BuyerName:         s.BuyerName,
		Summary:           s.Summary,
		Status:            s.Status.String(),
		OverallConfidence: s.OverallConfidence,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
