package usecase

import (
	"math"
	"testing"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func metrics(followers int64, engagement, quality float64) domain.CreatorMetrics {
	return domain.CreatorMetrics{
		CreatorID:      "creator-1",
		Platform:       "instagram",
		Followers:      followers,
		EngagementRate: engagement,
		QualityScore:   quality,
	}
}

func TestClassifyCreator(t *testing.T) {
	cases := []struct {
		name       string
		metrics    domain.CreatorMetrics
		wantTier   int
		wantCommission float64
	}{
		{"elite", metrics(150000, 3.5, 90), 1, 3.0},
		{"elite lower bound", metrics(100000, 3.0, 85), 1, 3.0},
		{"professional", metrics(75000, 2.5, 72), 2, 2.5},
		{"professional lower bound", metrics(50000, 2.0, 70), 2, 2.5},
		{"rising", metrics(15000, 1.7, 65), 3, 2.0},
		{"micro", metrics(6000, 1.2, 55), 4, 1.5},
		{"micro high engagement", metrics(6000, 9.9, 55), 4, 1.5},
		{"below follower floor", metrics(3000, 5.0, 99), 0, 0},
		{"high followers low engagement", metrics(150000, 2.5, 90), 0, 0},
		{"professional band low quality", metrics(75000, 2.5, 60), 0, 0},
		{"engagement at tier2 upper bound", metrics(75000, 3.0, 90), 0, 0},
		{"zero followers", metrics(0, 2.0, 90), 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyCreator(tc.metrics)
			assert.Equal(t, tc.wantTier, got.Tier)
			assert.Equal(t, tc.wantCommission, got.CommissionPercent)
			assert.Equal(t, tc.wantTier != 0, got.Qualified)
		})
	}
}

func TestClassifyCreator_InvalidInput(t *testing.T) {
	invalid := []domain.CreatorMetrics{
		metrics(150000, math.NaN(), 90),
		metrics(150000, math.Inf(1), 90),
		metrics(150000, 3.5, math.NaN()),
		metrics(150000, -1, 90),
		metrics(150000, 3.5, -5),
		metrics(-100, 3.5, 90),
	}
	for _, m := range invalid {
		got := ClassifyCreator(m)
		assert.Equal(t, 0, got.Tier)
		assert.False(t, got.Qualified)
	}
}

// Каждый валидный вход попадает ровно в один тир: правила проверяются
// сверху вниз и границы followers не пересекаются
func TestClassifyCreator_TierBandsExclusive(t *testing.T) {
	assert.Equal(t, 2, ClassifyCreator(metrics(99999, 2.5, 90)).Tier)
	assert.Equal(t, 1, ClassifyCreator(metrics(100000, 3.0, 90)).Tier)
	assert.Equal(t, 3, ClassifyCreator(metrics(49999, 1.7, 90)).Tier)
	assert.Equal(t, 2, ClassifyCreator(metrics(50000, 2.0, 90)).Tier)
	assert.Equal(t, 4, ClassifyCreator(metrics(9999, 1.2, 90)).Tier)
	assert.Equal(t, 3, ClassifyCreator(metrics(10000, 1.5, 90)).Tier)
	// Ниже пола tier 4 по подписчикам не спасают никакие другие метрики
	assert.Equal(t, 0, ClassifyCreator(metrics(4999, 10.0, 100)).Tier)
	assert.Equal(t, 4, ClassifyCreator(metrics(5000, 1.0, 50)).Tier)
}

func TestClassifyBestPlatform(t *testing.T) {
	best := ClassifyBestPlatform([]domain.CreatorMetrics{
		metrics(15000, 1.7, 65),  // tier 3
		metrics(150000, 3.5, 90), // tier 1
		metrics(6000, 1.2, 55),   // tier 4
	})
	assert.Equal(t, 1, best.Tier)
	assert.Equal(t, "Elite", best.Label)

	none := ClassifyBestPlatform([]domain.CreatorMetrics{
		metrics(3000, 5.0, 99),
		metrics(150000, 0.5, 90),
	})
	assert.Equal(t, 0, none.Tier)
	assert.False(t, none.Qualified)

	empty := ClassifyBestPlatform(nil)
	assert.False(t, empty.Qualified)
}

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 0.0, EngagementRate(0, 500, 100))
	assert.Equal(t, 0.0, EngagementRate(-10, 500, 100))
	assert.InDelta(t, 6.0, EngagementRate(10000, 500, 100), 1e-9)
}
