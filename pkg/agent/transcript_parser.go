package agent

import (
	"context"
	"encoding/json"
	"log"

	"realestate-buyer-be/pkg/llm"
)

const transcriptParserSystemPrompt = `You are a real estate transcript analyzer. You read conversation transcripts between a real estate agent and a prospective home buyer and extract the buyer's stated and implied preferences.

Instructions:
- Extract ALL preferences the buyer mentions or implies, not just the top ones.
- Categories to look for include (but are not limited to): budget, location, bedrooms, bathrooms, property_type, style, square_footage, lot_size, amenities, schools, commute, timeline, deal_breakers, nice_to_haves, parking, neighborhood, age_of_home, condition, outdoor_space, pets, hoa, financing, must_haves.
- Assign a confidence level to each preference:
  - "high": The buyer stated it explicitly and clearly (e.g., "We need at least 3 bedrooms").
  - "medium": The buyer implied or suggested it (e.g., "We have two kids" implies bedrooms >= 3).
  - "low": The preference is vague or uncertain (e.g., "Maybe somewhere on the west side?").
- For the value field, use a concise but complete description of the preference.
- Also produce a short 1-2 sentence summary of the buyer's overall needs.
- If the transcript is not a real estate conversation or contains no useful preferences, return an empty preferences list and a summary saying so.

Respond with a single JSON object: {"preferences": [{"category": "...", "value": "...", "confidence": "low|medium|high"}], "summary": "..."}`

// ExtractedPreference is one preference pulled out of a raw transcript.
type ExtractedPreference struct {
	Category   string `json:"category"`
	Value      string `json:"value"`
	Confidence string `json:"confidence"`
}

// ParseResult is the structured output of transcript parsing.
type ParseResult struct {
	Preferences []ExtractedPreference `json:"preferences"`
	Summary     string                `json:"summary"`
}

// TranscriptParser extracts buyer preferences from raw transcript text.
type TranscriptParser struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewTranscriptParser(provider llm.LLMProvider, logger *log.Logger) *TranscriptParser {
	return &TranscriptParser{
		provider: provider,
		logger:   logger,
	}
}

// Parse runs preference extraction over the raw transcript. Any model or
// decoding failure degrades to an empty result so transcript intake never
// blocks on the upstream service.
func (p *TranscriptParser) Parse(ctx context.Context, rawText string) *ParseResult {
	empty := &ParseResult{Preferences: []ExtractedPreference{}}

	history := []llm.Message{
		{Role: "system", Content: transcriptParserSystemPrompt},
		{Role: "user", Content: "Extract all buyer preferences from the following real estate transcript:\n\n" + rawText},
	}

	raw, err := p.provider.Chat(ctx, history,
		llm.WithTemperature(0.2),
		llm.WithJSONResponse(),
	)
	if err != nil {
		p.logger.Printf("[PARSER] extraction failed: %v", err)
		return empty
	}

	var result ParseResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		p.logger.Printf("[PARSER] unparseable extraction output: %v", err)
		return empty
	}
	if result.Preferences == nil {
		result.Preferences = []ExtractedPreference{}
	}
	return &result
}
