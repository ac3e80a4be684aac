package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	BuyerName string `json:"buyer_name"`
}

type SessionResponse struct {
	Id                uuid.UUID `json:"id"`
	BuyerName         *string   `json:"buyer_name"`
	Summary           *string   `json:"summary"`
	Status            string    `json:"status"`
	OverallConfidence *float64  `json:"overall_confidence"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type UploadTranscriptRequest struct {
	SessionId uuid.UUID
	RawText   string `json:"raw_text" validate:"required"`
}

type UploadTranscriptResponse struct {
	TranscriptId     uuid.UUID `json:"transcript_id"`
	SessionId        uuid.UUID `json:"session_id"`
	Status           string    `json:"status"`
	PreferencesCount int       `json:"preferences_count"`
}

type PreferenceResponse struct {
	Id          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Value       string    `json:"value"`
	Confidence  string    `json:"confidence"`
	Source      string    `json:"source"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionEventResponse struct {
	Id        uuid.UUID              `json:"id"`
	SessionId uuid.UUID              `json:"session_id"`
	EventType string                 `json:"event_type"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"created_at"`
}
