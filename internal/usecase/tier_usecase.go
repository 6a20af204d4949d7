package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/jaevor/go-nanoid"
)

// tierRule - одна строка таблицы порогов. Границы: нижняя включительно,
// верхняя исключительно. Правила проверяются строго сверху вниз,
// побеждает первое полностью выполненное.
type tierRule struct {
	Tier          int
	Label         string
	MinFollowers  float64
	MaxFollowers  float64
	MinEngagement float64
	MaxEngagement float64
	MinQuality    float64
	Commission    float64
}

var tierTable = []tierRule{
	{Tier: 1, Label: "Elite", MinFollowers: 100000, MaxFollowers: math.Inf(1), MinEngagement: 3.0, MaxEngagement: math.Inf(1), MinQuality: 85, Commission: 3.0},
	{Tier: 2, Label: "Professional", MinFollowers: 50000, MaxFollowers: 100000, MinEngagement: 2.0, MaxEngagement: 3.0, MinQuality: 70, Commission: 2.5},
	{Tier: 3, Label: "Rising", MinFollowers: 10000, MaxFollowers: 50000, MinEngagement: 1.5, MaxEngagement: 2.0, MinQuality: 60, Commission: 2.0},
	{Tier: 4, Label: "Micro", MinFollowers: 5000, MaxFollowers: 10000, MinEngagement: 1.0, MaxEngagement: math.Inf(1), MinQuality: 50, Commission: 1.5},
}

func notQualified() domain.TierResult {
	return domain.TierResult{Tier: 0, Label: "Not qualified", CommissionPercent: 0, Qualified: false}
}

func validMetric(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// ClassifyCreator - детерминированная классификация по метрикам одной платформы.
// Невалидный вход не ошибка: креатор просто не квалифицирован.
func ClassifyCreator(m domain.CreatorMetrics) domain.TierResult {
	if m.Followers <= 0 || !validMetric(m.EngagementRate) || !validMetric(m.QualityScore) {
		return notQualified()
	}
	followers := float64(m.Followers)
	for _, rule := range tierTable {
		if followers >= rule.MinFollowers && followers < rule.MaxFollowers &&
			m.EngagementRate >= rule.MinEngagement && m.EngagementRate < rule.MaxEngagement &&
			m.QualityScore >= rule.MinQuality {
			return domain.TierResult{
				Tier:              rule.Tier,
				Label:             rule.Label,
				CommissionPercent: rule.Commission,
				Qualified:         true,
			}
		}
	}
	return notQualified()
}

// ClassifyBestPlatform - для мультиплатформенных креаторов побеждает лучший
// квалифицированный тир (tier 1 лучше tier 4)
func ClassifyBestPlatform(platforms []domain.CreatorMetrics) domain.TierResult {
	best := notQualified()
	for _, m := range platforms {
		result := ClassifyCreator(m)
		if !result.Qualified {
			continue
		}
		if !best.Qualified || result.Tier < best.Tier {
			best = result
		}
	}
	return best
}

// EngagementRate = (avgLikes + avgComments) / followers * 100.
// При followers <= 0 возвращает 0, деления на ноль нет.
func EngagementRate(followers int64, avgLikes, avgComments float64) float64 {
	if followers <= 0 {
		return 0
	}
	return (avgLikes + avgComments) / float64(followers) * 100
}

type TierUsecase interface {
	Classify(metrics domain.CreatorMetrics) domain.TierResult
	ClassifyBest(platforms []domain.CreatorMetrics) domain.TierResult
	RecomputeCreatorTiers(ctx context.Context) error
	GetCreatorProfile(creatorID string) (*domain.CreatorProfile, error)
}

type DefaultTierUsecase struct {
	CreatorRepo domain.CreatorRepository
	Analytics   domain.AnalyticsProvider
}

func NewDefaultTierUsecase(creatorRepo domain.CreatorRepository, analytics domain.AnalyticsProvider) *DefaultTierUsecase {
	return &DefaultTierUsecase{
		CreatorRepo: creatorRepo,
		Analytics:   analytics,
	}
}

func (uc *DefaultTierUsecase) Classify(metrics domain.CreatorMetrics) domain.TierResult {
	return ClassifyCreator(metrics)
}

func (uc *DefaultTierUsecase) ClassifyBest(platforms []domain.CreatorMetrics) domain.TierResult {
	return ClassifyBestPlatform(platforms)
}

func (uc *DefaultTierUsecase) GetCreatorProfile(creatorID string) (*domain.CreatorProfile, error) {
	return uc.CreatorRepo.GetProfileByID(creatorID)
}

// RecomputeCreatorTiers - периодический пересчет тиров по свежим метрикам.
// Снапшот пишется в профиль; уже рассчитанные сплиты эскроу не трогаем.
func (uc *DefaultTierUsecase) RecomputeCreatorTiers(ctx context.Context) error {
	creatorIDs, err := uc.CreatorRepo.ListCreatorIDs()
	if err != nil {
		return err
	}

	for _, creatorID := range creatorIDs {
		platforms, err := uc.Analytics.GetCreatorMetrics(ctx, creatorID)
		if err != nil {
			slog.Error("failed to pull creator metrics", "creator_id", creatorID, "error", err.Error())
			continue
		}
		for i := range platforms {
			platforms[i].EngagementRate = EngagementRate(platforms[i].Followers, platforms[i].AvgLikes, platforms[i].AvgComments)
			if err := uc.CreatorRepo.SaveMetrics(&platforms[i]); err != nil {
				slog.Error("failed to save creator metrics", "creator_id", creatorID, "platform", platforms[i].Platform, "error", err.Error())
			}
		}

		result := ClassifyBestPlatform(platforms)

		idGenerator, err := nanoid.Standard(12)
		if err != nil {
			return err
		}
		profile := domain.CreatorProfile{
			CreatorID:         creatorID,
			ReferralCode:      idGenerator(),
			Tier:              result.Tier,
			TierLabel:         result.Label,
			CommissionPercent: result.CommissionPercent,
			Qualified:         result.Qualified,
			TierUpdatedAt:     time.Now(),
		}
		if err := uc.CreatorRepo.UpsertProfile(&profile); err != nil {
			slog.Error("failed to upsert creator profile", "creator_id", creatorID, "error", err.Error())
			continue
		}
		slog.Info("creator tier recomputed", "creator_id", creatorID, "tier", result.Tier, "commission", result.CommissionPercent)
	}

	return nil
}
