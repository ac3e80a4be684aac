package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BuyerProfile is upserted in place; the unique index keeps at most one row
// per session.
type BuyerProfile struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	ScoredPreferences datatypes.JSON `gorm:"not null"`
	GeneratedAt       time.Time      `gorm:"autoCreateTime"`
}

func (BuyerProfile) TableName() string {
	return "buyer_profiles"
}
