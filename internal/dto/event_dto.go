package dto

import (
	"github.com/google/uuid"
)

// SessionActivityMessage is the payload published on the in-process
// activity topic after a pipeline stage finishes.
type SessionActivityMessage struct {
	SessionId uuid.UUID              `json:"session_id"`
	EventType string                 `json:"event_type"`
	Details   map[string]interface{} `json:"details"`
}
