package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionEvent is the persisted activity trail, written asynchronously by
// the consumer service from published events.
type SessionEvent struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	EventType string         `gorm:"type:varchar(50);not null"`
	Details   datatypes.JSON `gorm:""`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (SessionEvent) TableName() string {
	return "session_events"
}
