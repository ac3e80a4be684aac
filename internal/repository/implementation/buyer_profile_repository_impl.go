package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/mapper"
	"realestate-buyer-be/internal/model"
	"realestate-buyer-be/internal/repository/contract"
	"realestate-buyer-be/internal/repository/specification"
)

type BuyerProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewBuyerProfileRepository(db *gorm.DB) contract.BuyerProfileRepository {
	return &BuyerProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *BuyerProfileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BuyerProfileRepositoryImpl) Create(ctx context.Context, profile *entity.BuyerProfile) error {
	m, err := r.mapper.ToModel(profile)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// Concurrent regeneration can race on the per-session unique
		// index. The later write wins.
		if !isUniqueViolation(err) {
			return err
		}
		if err := r.db.WithContext(ctx).Model(&model.BuyerProfile{}).
			Where("session_id = ?", m.SessionId).
			Updates(map[string]interface{}{
				"scored_preferences": m.ScoredPreferences,
				"generated_at":       m.GeneratedAt,
			}).Error; err != nil {
			return err
		}
		var existing model.BuyerProfile
		if err := r.db.WithContext(ctx).Where("session_id = ?", m.SessionId).First(&existing).Error; err != nil {
			return err
		}
		m = &existing
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*profile = *e
	return nil
}

func (r *BuyerProfileRepositoryImpl) Update(ctx context.Context, profile *entity.BuyerProfile) error {
	m, err := r.mapper.ToModel(profile)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*profile = *e
	return nil
}

func (r *BuyerProfileRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.BuyerProfile, error) {
	return r.FindOne(ctx, specification.BySessionID{SessionID: sessionId})
}

func (r *BuyerProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BuyerProfile, error) {
	var m model.BuyerProfile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}
