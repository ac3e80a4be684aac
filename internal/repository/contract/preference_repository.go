package contract

import (
	"context"

	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/repository/specification"
)

type PreferenceRepository interface {
	Create(ctx context.Context, preference *entity.Preference) error
	CreateBatch(ctx context.Context, preferences []*entity.Preference) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Preference, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
