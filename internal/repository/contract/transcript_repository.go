package contract

import (
	"context"

	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/repository/specification"
)

type TranscriptRepository interface {
	Create(ctx context.Context, transcript *entity.Transcript) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transcript, error)
}
