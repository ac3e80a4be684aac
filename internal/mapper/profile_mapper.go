package mapper

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/model"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(p *model.BuyerProfile) (*entity.BuyerProfile, error) {
	if p == nil {
		return nil, nil
	}

	e := &entity.BuyerProfile{
		Id:          p.Id,
		SessionId:   p.SessionId,
		GeneratedAt: p.GeneratedAt,
	}
	if err := json.Unmarshal(p.ScoredPreferences, &e.ScoredPreferences); err != nil {
		return nil, fmt.Errorf("decode stored profile: %w", err)
	}
	return e, nil
}

func (m *ProfileMapper) ToModel(p *entity.BuyerProfile) (*model.BuyerProfile, error) {
	if p == nil {
		return nil, nil
	}

	doc, err := json.Marshal(p.ScoredPreferences)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return &model.BuyerProfile{
		Id:                p.Id,
		SessionId:         p.SessionId,
		ScoredPreferences: datatypes.JSON(doc),
		GeneratedAt:       p.GeneratedAt,
	}, nil
}

func (m *ProfileMapper) SessionEventToEntity(e *model.SessionEvent) *entity.SessionEvent {
	if e == nil {
		return nil
	}

	details := map[string]interface{}{}
	if len(e.Details) > 0 {
		// Details were marshalled by us; a decode failure leaves them empty
		_ = json.Unmarshal(e.Details, &details)
	}
	return &entity.SessionEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		EventType: e.EventType,
		Details:   details,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ProfileMapper) SessionEventToModel(e *entity.SessionEvent) *model.SessionEvent {
	if e == nil {
		return nil
	}

	var details datatypes.JSON
	if e.Details != nil {
		if raw, err := json.Marshal(e.Details); err == nil {
			details = datatypes.JSON(raw)
		}
	}
	return &model.SessionEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		EventType: e.EventType,
		Details:   details,
		CreatedAt: e.CreatedAt,
	}
}
