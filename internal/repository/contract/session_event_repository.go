package contract

import (
	"context"

	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/repository/specification"
)

type SessionEventRepository interface {
	Create(ctx context.Context, event *entity.SessionEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionEvent, error)
}
