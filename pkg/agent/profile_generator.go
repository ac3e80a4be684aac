package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"realestate-buyer-be/pkg/llm"
)

const profileGeneratorSystemPrompt = `You are a real estate buyer profiling expert. You receive a list of buyer preferences (extracted from transcripts and chat conversations) and, optionally, the full chat history for additional context.

Your job is to synthesize everything into a comprehensive buyer profile.

Instructions:
1. Extract NEW preferences from the chat — the chat often reveals preferences NOT in the original list. Every stated want, need, or preference from the chat should appear as a scored preference.
2. Score every preference on a 1-10 importance scale based on how critical it is to the buyer. Use the buyer's own language as a guide: "must have", "non-negotiable" -> 9-10; "really want" -> 7-8; "would be nice" -> 4-6; "maybe" -> 1-3.
3. Assign confidence ("low", "medium", "high") to each score based on how clearly the buyer expressed the preference.
4. Identify deal breakers — items the buyer absolutely will not compromise on. Use direct quotes when possible.
5. Identify nice-to-haves — things the buyer would like but can flex on.
6. Summarize the budget situation — range, pre-approval, constraints.
7. Assess overall buying readiness: "exploring", "active", or "ready_to_buy".
8. Write a 2-3 sentence profile summary describing the ideal match for this buyer, suitable for an agent searching listings. Mention specific features from both the transcript AND chat.

Respond with a single JSON object: {"scored_preferences": [{"category": "...", "value": "...", "score": 1-10, "confidence": "low|medium|high", "notes": "..."}], "deal_breakers": [...], "nice_to_haves": [...], "budget_summary": "...", "overall_readiness": "exploring|active|ready_to_buy", "profile_summary": "..."}`

// ScoredPreference is one preference with its importance score.
type ScoredPreference struct {
	Category   string `json:"category"`
	Value      string `json:"value"`
	Score      int    `json:"score"`
	Confidence string `json:"confidence"`
	Notes      string `json:"notes"`
}

// ProfileResult is the synthesized, scored buyer profile.
type ProfileResult struct {
	ScoredPreferences []ScoredPreference `json:"scored_preferences"`
	DealBreakers      []string           `json:"deal_breakers"`
	NiceToHaves       []string           `json:"nice_to_haves"`
	BudgetSummary     string             `json:"budget_summary"`
	OverallReadiness  string             `json:"overall_readiness"`
	ProfileSummary    string             `json:"profile_summary"`
}

// ProfileGenerator synthesizes a scored buyer profile from accumulated
// preferences and the optional chat history.
type ProfileGenerator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewProfileGenerator(provider llm.LLMProvider, logger *log.Logger) *ProfileGenerator {
	return &ProfileGenerator{
		provider: provider,
		logger:   logger,
	}
}

// Generate produces the scored profile. On any upstream failure a fallback
// profile built from the input preferences is returned instead, so profile
// generation always completes.
func (g *ProfileGenerator) Generate(ctx context.Context, preferences []PreferenceContext, chat []ChatTurn) *ProfileResult {
	var user strings.Builder
	user.WriteString("Here are the buyer's extracted preferences:\n\n")
	user.WriteString(formatPreferences(preferences))
	if len(chat) > 0 {
		user.WriteString("\n\nHere is the chat conversation for additional context:\n\n")
		user.WriteString(formatChat(chat))
	}

	history := []llm.Message{
		{Role: "system", Content: profileGeneratorSystemPrompt},
		{Role: "user", Content: user.String()},
	}

	raw, err := g.provider.Chat(ctx, history,
		llm.WithTemperature(0.3),
		llm.WithJSONResponse(),
	)
	if err != nil {
		g.logger.Printf("[PROFILE] synthesis failed: %v", err)
		return FallbackProfile(preferences)
	}

	var result ProfileResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		g.logger.Printf("[PROFILE] unparseable synthesis output: %v", err)
		return FallbackProfile(preferences)
	}
	if result.ScoredPreferences == nil {
		result.ScoredPreferences = []ScoredPreference{}
	}
	if result.DealBreakers == nil {
		result.DealBreakers = []string{}
	}
	if result.NiceToHaves == nil {
		result.NiceToHaves = []string{}
	}
	return &result
}

// FallbackProfile copies every input preference through at a neutral score
// so the workflow can still complete when synthesis is unavailable.
func FallbackProfile(preferences []PreferenceContext) *ProfileResult {
	scored := make([]ScoredPreference, 0, len(preferences))
	for _, p := range preferences {
		confidence := p.Confidence
		if confidence == "" {
			confidence = "low"
		}
		scored = append(scored, ScoredPreference{
			Category:   p.Category,
			Value:      p.Value,
			Score:      5,
			Confidence: confidence,
			Notes:      "Auto-scored (AI unavailable)",
		})
	}

	return &ProfileResult{
		ScoredPreferences: scored,
		DealBreakers:      []string{},
		NiceToHaves:       []string{},
		BudgetSummary:     "Unable to analyze budget — AI service unavailable.",
		OverallReadiness:  "exploring",
		ProfileSummary: "Profile generated with fallback scoring. " +
			"Re-run profile generation when the AI service is available for a more accurate analysis.",
	}
}

func formatPreferences(preferences []PreferenceContext) string {
	if len(preferences) == 0 {
		return "No preferences available."
	}

	lines := make([]string, 0, len(preferences))
	for _, p := range preferences {
		confirmed := ""
		if p.IsConfirmed {
			confirmed = " [CONFIRMED]"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (confidence: %s, source: %s%s)",
			p.Category, p.Value, p.Confidence, p.Source, confirmed))
	}
	return strings.Join(lines, "\n")
}

func formatChat(chat []ChatTurn) string {
	lines := make([]string, 0, len(chat))
	for _, turn := range chat {
		role := turn.Role
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, turn.Content))
	}
	return strings.Join(lines, "\n")
}
