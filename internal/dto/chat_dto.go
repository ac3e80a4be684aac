package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	SessionId uuid.UUID
	Content   string `json:"content" validate:"required"`
}

type ChatMessageResponse struct {
	Id           uuid.UUID `json:"id"`
	SessionId    uuid.UUID `json:"session_id"`
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	StrategyUsed *string   `json:"strategy_used"`
	TurnNumber   int       `json:"turn_number"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChatStreamEvent is a single frame on the message stream. Type is
// "token" while the reply is being generated and "done" once the
// assistant message has been persisted.
type ChatStreamEvent struct {
	Type      string     `json:"type"`
	Content   string     `json:"content,omitempty"`
	MessageId *uuid.UUID `json:"message_id,omitempty"`
}
