package dto

import (
	"time"

	"github.com/google/uuid"

	"realestate-buyer-be/pkg/agent"
)

type ScoredPreferenceResponse struct {
	Category   string `json:"category"`
	Value      string `json:"value"`
	Score      int    `json:"score"`
	Confidence string `json:"confidence"`
	Notes      string `json:"notes"`
}

type BuyerProfileResponse struct {
	Id                uuid.UUID                  `json:"id"`
	SessionId         uuid.UUID                  `json:"session_id"`
	ScoredPreferences []ScoredPreferenceResponse `json:"scored_preferences"`
	DealBreakers      []string                   `json:"deal_breakers"`
	NiceToHaves       []string                   `json:"nice_to_haves"`
	BudgetSummary     string                     `json:"budget_summary"`
	OverallReadiness  string                     `json:"overall_readiness"`
	ProfileSummary    string                     `json:"profile_summary"`
	OverallConfidence float64                    `json:"overall_confidence"`
	GeneratedAt       time.Time                  `json:"generated_at"`
}

func NewBuyerProfileResponse(id, sessionId uuid.UUID, result agent.ProfileResult, overallConfidence float64, generatedAt time.Time) *BuyerProfileResponse {
	scored := make([]ScoredPreferenceResponse, 0, len(result.ScoredPreferences))
	for _, sp := range result.ScoredPreferences {
		scored = append(scored, ScoredPreferenceResponse{
			Category:   sp.Category,
			Value:      sp.Value,
			Score:      sp.Score,
			Confidence: sp.Confidence,
			Notes:      sp.Notes,
		})
	}

	return &BuyerProfileResponse{
		Id:                id,
		SessionId:         sessionId,
		ScoredPreferences: scored,
		DealBreakers:      result.DealBreakers,
		NiceToHaves:       result.NiceToHaves,
		BudgetSummary:     result.BudgetSummary,
		OverallReadiness:  result.OverallReadiness,
		ProfileSummary:    result.ProfileSummary,
		OverallConfidence: overallConfidence,
		GeneratedAt:       generatedAt,
	}
}
