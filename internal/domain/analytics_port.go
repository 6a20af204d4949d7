package domain

import "context"

// AnalyticsProvider - внешний сервис аналитики соцсетей.
// Отдает свежие метрики по всем платформам креатора.
type AnalyticsProvider interface {
	GetCreatorMetrics(ctx context.Context, creatorID string) ([]CreatorMetrics, error)
}
