package entity

import (
	"time"

	"github.com/google/uuid"

	"realestate-buyer-be/pkg/workflow"
)

type Session struct {
	Id                uuid.UUID
	BuyerName         *string
	Summary           *string
	Status            workflow.Status
	OverallConfidence *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Transcript struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	RawText    string
	UploadedAt time.Time
}
