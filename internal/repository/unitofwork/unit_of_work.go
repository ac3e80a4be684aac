package unitofwork

import (
	"context"

	"realestate-buyer-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	TranscriptRepository() contract.TranscriptRepository
	PreferenceRepository() contract.PreferenceRepository
	ChatMessageRepository() contract.ChatMessageRepository
	BuyerProfileRepository() contract.BuyerProfileRepository
	SessionEventRepository() contract.SessionEventRepository
}
