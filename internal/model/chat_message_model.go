package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage turn numbers are assigned by the chat pipeline (user = count+1,
// assistant = count+2); the schema does not enforce contiguity.
type ChatMessage struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Content      string    `gorm:"type:text;not null"`
	StrategyUsed *string   `gorm:"type:varchar(50)"`
	TurnNumber   int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
