package mapper

import (
	"fmt"

	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/model"
	"realestate-buyer-be/pkg/workflow"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) SessionToEntity(s *model.Session) (*entity.Session, error) {
	if s == nil {
		return nil, nil
	}

	status, err := workflow.ParseStatus(s.Status)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.Id, err)
	}

	return &entity.Session{
		Id:                s.Id,
		BuyerName:         s.BuyerName,
		Summary:           s.Summary,
		Status:            status,
		OverallConfidence: s.OverallConfidence,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}, nil
}

func (m *SessionMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	return &model.Session{
		Id:                s.Id,
		BuyerName:         s.BuyerName,
		Summary:           s.Summary,
		Status:            s.Status.String(),
		OverallConfidence: s.OverallConfidence,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *SessionMapper) TranscriptToEntity(t *model.Transcript) *entity.Transcript {
	if t == nil {
		return nil
	}

	return &entity.Transcript{
		Id:         t.Id,
		SessionId:  t.SessionId,
		RawText:    t.RawText,
		UploadedAt: t.UploadedAt,
	}
}

func (m *SessionMapper) TranscriptToModel(t *entity.Transcript) *model.Transcript {
	if t == nil {
		return nil
	}

	return &model.Transcript{
		Id:         t.Id,
		SessionId:  t.SessionId,
		RawText:    t.RawText,
		UploadedAt: t.UploadedAt,
	}
}
