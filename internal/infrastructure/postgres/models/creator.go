package models

import "time"

type CreatorMetricsModel struct {
	ID          uint   `gorm:"primaryKey"`
	CreatorID   string `gorm:"index:idx_creator_platform,unique"`
	Platform    string `gorm:"index:idx_creator_platform,unique"`
	Followers   int64
	AvgLikes    float64
	AvgComments float64
	EngagementRate float64
	QualityScore   float64
	CollectedAt    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreatorProfileModel struct {
	CreatorID         string `gorm:"primaryKey"`
	ReferralCode      string `gorm:"uniqueIndex"`
	Tier              int
	TierLabel         string
	CommissionPercent float64
	Qualified         bool
	TierUpdatedAt     time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
