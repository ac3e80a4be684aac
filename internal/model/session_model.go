package model

import (
	"time"

	"github.com/google/uuid"
)

// Session rows are never deleted; the lifecycle only moves status forward.
type Session struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BuyerName         *string   `gorm:"type:varchar(255)"`
	Summary           *string   `gorm:"type:text"`
	Status            string    `gorm:"type:varchar(20);not null;default:'parsing'"`
	OverallConfidence *float64
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
