package repository

import (
	"errors"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCreatorRepository struct {
	db *gorm.DB
}

func NewDefaultCreatorRepository(db *gorm.DB) *DefaultCreatorRepository {
	return &DefaultCreatorRepository{db: db}
}

func (r *DefaultCreatorRepository) SaveMetrics(metrics *domain.CreatorMetrics) error {
	metricsModel := mappers.ToGORMCreatorMetrics(metrics)
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "creator_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"followers", "avg_likes", "avg_comments", "engagement_rate", "quality_score", "collected_at", "updated_at",
		}),
	}).Create(metricsModel).Error
}

func (r *DefaultCreatorRepository) GetMetricsByCreatorID(creatorID string) ([]*domain.CreatorMetrics, error) {
	var metricsModels []models.CreatorMetricsModel
	if err := r.db.Model(&models.CreatorMetricsModel{}).
		Where("creator_id = ?", creatorID).
		Find(&metricsModels).Error; err != nil {
		return nil, err
	}
	metrics := make([]*domain.CreatorMetrics, len(metricsModels))
	for i, metricsModel := range metricsModels {
		metrics[i] = mappers.ToDomainCreatorMetrics(&metricsModel)
	}
	return metrics, nil
}

// UpsertProfile обновляет снапшот тира. Реферальный код выдается один раз
// при создании профиля и при последующих пересчетах не меняется.
func (r *DefaultCreatorRepository) UpsertProfile(profile *domain.CreatorProfile) error {
	profileModel := mappers.ToGORMCreatorProfile(profile)
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "creator_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tier", "tier_label", "commission_percent", "qualified", "tier_updated_at", "updated_at",
		}),
	}).Create(profileModel).Error
}

func (r *DefaultCreatorRepository) GetProfileByID(creatorID string) (*domain.CreatorProfile, error) {
	var profileModel models.CreatorProfileModel
	if err := r.db.First(&profileModel, "creator_id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCreatorNotFound
		}
		return nil, err
	}
	return mappers.ToDomainCreatorProfile(&profileModel), nil
}

func (r *DefaultCreatorRepository) ListCreatorIDs() ([]string, error) {
	var fromMetrics []string
	if err := r.db.Model(&models.CreatorMetricsModel{}).
		Distinct("creator_id").
		Pluck("creator_id", &fromMetrics).Error; err != nil {
		return nil, err
	}

	var fromProfiles []string
	if err := r.db.Model(&models.CreatorProfileModel{}).
		Pluck("creator_id", &fromProfiles).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(fromMetrics))
	ids := make([]string, 0, len(fromMetrics)+len(fromProfiles))
	for _, id := range append(fromMetrics, fromProfiles...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
