package entity

import (
	"time"

	"github.com/google/uuid"

	"realestate-buyer-be/pkg/agent"
)

// BuyerProfile holds the synthesized profile document as produced by
// profile generation (or its fallback).
type BuyerProfile struct {
	Id                uuid.UUID
	SessionId         uuid.UUID
	ScoredPreferences agent.ProfileResult
	GeneratedAt       time.Time
}
