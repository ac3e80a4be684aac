package mapper

import (
	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/model"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(p *model.Preference) *entity.Preference {
	if p == nil {
		return nil
	}

	return &entity.Preference{
		Id:          p.Id,
		SessionId:   p.SessionId,
		Category:    p.Category,
		Value:       p.Value,
		Confidence:  p.Confidence,
		Source:      p.Source,
		IsConfirmed: p.IsConfirmed,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *PreferenceMapper) ToModel(p *entity.Preference) *model.Preference {
	if p == nil {
		return nil
	}

	return &model.Preference{
		Id:          p.Id,
		SessionId:   p.SessionId,
		Category:    p.Category,
		Value:       p.Value,
		Confidence:  p.Confidence,
		Source:      p.Source,
		IsConfirmed: p.IsConfirmed,
		CreatedAt:   p.CreatedAt,
	}
}
