package domain

import "time"

// CreatorMetrics - метрики креатора по одной социальной платформе.
// Поставляются внешним аналитическим сервисом, пересчитываются периодически.
type CreatorMetrics struct {
	CreatorID      string
	Platform       string
	Followers      int64
	AvgLikes       float64
	AvgComments    float64
	EngagementRate float64
	QualityScore   float64
	CollectedAt    time.Time
}

// TierResult - результат классификации. Не хранится как источник истины:
// потребители снимают снапшот в профиль креатора.
type TierResult struct {
	Tier              int
	Label             string
	CommissionPercent float64
	Qualified         bool
}

// CreatorProfile - снапшот тира на момент последнего пересчета.
// Комиссия по продаже берется из снапшота на момент оплаты.
type CreatorProfile struct {
	CreatorID         string
	ReferralCode      string
	Tier              int
	TierLabel         string
	CommissionPercent float64
	Qualified         bool
	TierUpdatedAt     time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CreatorRepository interface {
	SaveMetrics(metrics *CreatorMetrics) error
	GetMetricsByCreatorID(creatorID string) ([]*CreatorMetrics, error)
	UpsertProfile(profile *CreatorProfile) error
	GetProfileByID(creatorID string) (*CreatorProfile, error)
	ListCreatorIDs() ([]string, error)
}
