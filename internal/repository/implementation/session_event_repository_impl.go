package implementation

import (
	"context"

	"gorm.io/gorm"

	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/mapper"
	"realestate-buyer-be/internal/model"
	"realestate-buyer-be/internal/repository/contract"
	"realestate-buyer-be/internal/repository/specification"
)

type SessionEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewSessionEventRepository(db *gorm.DB) contract.SessionEventRepository {
	return &SessionEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *SessionEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionEventRepositoryImpl) Create(ctx context.Context, event *entity.SessionEvent) error {
	m := r.mapper.SessionEventToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.SessionEventToEntity(m)
	return nil
}

func (r *SessionEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionEvent, error) {
	var models []*model.SessionEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SessionEvent, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SessionEventToEntity(m)
	}
	return entities, nil
}
