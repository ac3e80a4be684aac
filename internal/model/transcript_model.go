package model

import (
	"time"

	"github.com/google/uuid"
)

type Transcript struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	RawText    string    `gorm:"type:text;not null"`
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

func (Transcript) TableName() string {
	return "transcripts"
}
