package constant

// Chat roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// Preference confidence levels
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Preference sources
const (
	SourceTranscript = "transcript"
	SourceChat       = "chat"
	SourceBoth       = "both"
)

// Buyer readiness levels reported by profile synthesis
const (
	ReadinessExploring  = "exploring"
	ReadinessActive     = "active"
	ReadinessReadyToBuy = "ready_to_buy"
)

// Session activity event types
const (
	EventTranscriptParsed = "TRANSCRIPT_PARSED"
	EventChatTurn         = "CHAT_TURN"
	EventProfileGenerated = "PROFILE_GENERATED"
)

// MinTranscriptLength is the minimum trimmed transcript length accepted for
// preference extraction.
const MinTranscriptLength = 100

// IsValidConfidence guards the confidence levels extraction reports;
// roles and sources only ever originate from the constants above.
func IsValidConfidence(level string) bool {
	switch level {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}
