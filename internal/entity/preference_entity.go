package entity

import (
	"time"

	"github.com/google/uuid"
)

type Preference struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	Category    string
	Value       string
	Confidence  string
	Source      string
	IsConfirmed bool
	CreatedAt   time.Time
}
