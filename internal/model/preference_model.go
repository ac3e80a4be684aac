package model

import (
	"time"

	"github.com/google/uuid"
)

type Preference struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Category    string    `gorm:"type:varchar(100);not null"`
	Value       string    `gorm:"type:text;not null"`
	Confidence  string    `gorm:"type:varchar(20);not null;default:'low'"`
	Source      string    `gorm:"type:varchar(20);not null;default:'transcript'"`
	IsConfirmed bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Preference) TableName() string {
	return "preferences"
}
