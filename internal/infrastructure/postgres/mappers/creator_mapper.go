package mappers

import (
	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainCreatorMetrics(model *models.CreatorMetricsModel) *domain.CreatorMetrics {
	return &domain.CreatorMetrics{
		CreatorID:      model.CreatorID,
		Platform:       model.Platform,
		Followers:      model.Followers,
		AvgLikes:       model.AvgLikes,
		AvgComments:    model.AvgComments,
		EngagementRate: model.EngagementRate,
		QualityScore:   model.QualityScore,
		CollectedAt:    model.CollectedAt,
	}
}

func ToGORMCreatorMetrics(metrics *domain.CreatorMetrics) *models.CreatorMetricsModel {
	return &models.CreatorMetricsModel{
		CreatorID:      metrics.CreatorID,
		Platform:       metrics.Platform,
		Followers:      metrics.Followers,
		AvgLikes:       metrics.AvgLikes,
		AvgComments:    metrics.AvgComments,
		EngagementRate: metrics.EngagementRate,
		QualityScore:   metrics.QualityScore,
		CollectedAt:    metrics.CollectedAt,
	}
}

func ToDomainCreatorProfile(model *models.CreatorProfileModel) *domain.CreatorProfile {
	return &domain.CreatorProfile{
		CreatorID:         model.CreatorID,
		ReferralCode:      model.ReferralCode,
		Tier:              model.Tier,
		TierLabel:         model.TierLabel,
		CommissionPercent: model.CommissionPercent,
		Qualified:         model.Qualified,
		TierUpdatedAt:     model.TierUpdatedAt,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func ToGORMCreatorProfile(profile *domain.CreatorProfile) *models.CreatorProfileModel {
	return &models.CreatorProfileModel{
		CreatorID:         profile.CreatorID,
		ReferralCode:      profile.ReferralCode,
		Tier:              profile.Tier,
		TierLabel:         profile.TierLabel,
		CommissionPercent: profile.CommissionPercent,
		Qualified:         profile.Qualified,
		TierUpdatedAt:     profile.TierUpdatedAt,
	}
}
