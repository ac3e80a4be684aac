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

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PreferenceRepositoryImpl) Create(ctx context.Context, preference *entity.Preference) error {
	m := r.mapper.ToModel(preference)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*preference = *r.mapper.ToEntity(m)
	return nil
}

func (r *PreferenceRepositoryImpl) CreateBatch(ctx context.Context, preferences []*entity.Preference) error {
	if len(preferences) == 0 {
		return nil
	}

	models := make([]*model.Preference, len(preferences))
	for i, p := range preferences {
		models[i] = r.mapper.ToModel(p)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*preferences[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PreferenceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Preference, error) {
	var models []*model.Preference
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Preference, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PreferenceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Preference{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
