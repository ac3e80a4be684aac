package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionEvent struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	EventType string
	Details   map[string]interface{}
	CreatedAt time.Time
}
