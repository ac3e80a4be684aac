package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"realestate-buyer-be/pkg/llm"
)

const chatStrategistSystemPrompt = `You are a warm, knowledgeable real estate assistant helping a home buyer discover and refine their ideal property preferences. Your name is Mia.

Context about this buyer (preferences extracted from their initial conversation with their agent):
%s

Your conversation strategies:
1. PROBE - Ask open-ended questions to discover new preferences
2. CLARIFY - When something is vague, ask for specifics
3. CONFIRM - Reflect back what you've heard to verify
4. SUGGEST - Based on what you know, suggest considerations they may not have thought of
5. PRIORITIZE - Help them rank what matters most vs. nice-to-haves

Guidelines:
- Keep responses conversational and concise (2-4 sentences typically)
- Ask ONE question at a time to avoid overwhelming them
- Be encouraging and positive
- Reference their known preferences naturally
- When you learn something new or a preference is confirmed, note it naturally
- Don't use bullet points or formatted lists, keep it chatty
- If they seem done or satisfied, offer to wrap up and summarize`

// FallbackReply is streamed in place of model output when generation fails
// mid-stream.
const FallbackReply = "I'm sorry, I'm having trouble responding right now. Please try again."

// ChatStrategist conducts the guided preference discovery conversation.
type ChatStrategist struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewChatStrategist(provider llm.LLMProvider, logger *log.Logger) *ChatStrategist {
	return &ChatStrategist{
		provider: provider,
		logger:   logger,
	}
}

// StreamReply streams the assistant's next reply through emit, fragment by
// fragment in arrival order. If the provider fails before or during
// generation, a single apology fragment is emitted instead and the error is
// swallowed, so the caller always receives a well-formed reply. The only
// error returned is one raised by emit itself.
func (s *ChatStrategist) StreamReply(ctx context.Context, history []ChatTurn, preferences []PreferenceContext, emit llm.TokenFunc) error {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: fmt.Sprintf(chatStrategistSystemPrompt, preferencesContext(preferences)),
	})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	emitFailed := false
	err := s.provider.ChatStream(ctx, messages, func(token string) error {
		if err := emit(token); err != nil {
			emitFailed = true
			return err
		}
		return nil
	}, llm.WithTemperature(0.8), llm.WithMaxTokens(500))

	if err == nil {
		return nil
	}
	if emitFailed {
		// The caller's sink broke; nothing sensible left to emit.
		return err
	}

	s.logger.Printf("[STRATEGIST] generation failed: %v", err)
	return emit(FallbackReply)
}

func preferencesContext(preferences []PreferenceContext) string {
	if len(preferences) == 0 {
		return "No preferences have been extracted yet. Start from scratch."
	}

	lines := make([]string, 0, len(preferences))
	for _, p := range preferences {
		confidence := p.Confidence
		if confidence == "" {
			confidence = "medium"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (confidence: %s)", p.Category, p.Value, confidence))
	}
	return strings.Join(lines, "\n")
}
