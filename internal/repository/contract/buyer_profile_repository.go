package contract

import (
	"context"

	"github.com/google/uuid"

	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/repository/specification"
)

type BuyerProfileRepository interface {
	Create(ctx context.Context, profile *entity.BuyerProfile) error
	Update(ctx context.Context, profile *entity.BuyerProfile) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.BuyerProfile, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BuyerProfile, error)
}
