package background

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/usecase"
)

// Сколько handover продажи может висеть без документов до напоминания застройщику
const staleDocsAge = 48 * time.Hour

type BackgroundTasks struct {
	TierUsecase  usecase.TierUsecase
	HandoverRepo domain.HandoverRepository
	Notifier     domain.Notifier
}

func NewBackgroundTasks(tierUC usecase.TierUsecase, handoverRepo domain.HandoverRepository, notifier domain.Notifier) *BackgroundTasks {
	return &BackgroundTasks{
		TierUsecase:  tierUC,
		HandoverRepo: handoverRepo,
		Notifier:     notifier,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startTierRecompute(ctx)
	go bt.startStaleDocsReminder(ctx)
}

func (bt *BackgroundTasks) startTierRecompute(ctx context.Context) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.TierUsecase.RecomputeCreatorTiers(ctx); err != nil {
				log.Printf("Tier recompute error: %v\n", err)
			}
		}
	}
}

func (bt *BackgroundTasks) startStaleDocsReminder(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stale, err := bt.HandoverRepo.FindStaleAwaitingDocs(time.Now().Add(-staleDocsAge))
			if err != nil {
				log.Printf("Stale handover check error: %v\n", err)
				continue
			}
			for _, handover := range stale {
				slog.Warn("handover awaiting documents too long",
					"handover_id", handover.ID,
					"developer_id", handover.DeveloperID,
					"created_at", handover.CreatedAt,
				)
				// Помечаем ожидание документов явно; проигранный CAS значит,
				// что застройщик успел их загрузить
				err := bt.HandoverRepo.TransitionStatus(
					handover.ID,
					[]domain.HandoverStatus{domain.HandoverPaymentConfirmed},
					domain.HandoverPendingDeveloperDocs,
					nil,
				)
				if err != nil && !errors.Is(err, domain.ErrStatusConflict) {
					log.Printf("Failed to mark handover pending docs: %v\n", err)
				}
				bt.Notifier.SendHandoverCallback(domain.CallbackPayload{
					HandoverID:  handover.ID,
					EscrowID:    handover.EscrowID,
					PropertyID:  handover.PropertyID,
					BuyerID:     handover.BuyerID,
					DeveloperID: handover.DeveloperID,
					Status:      string(domain.HandoverPendingDeveloperDocs),
					OccurredAt:  time.Now(),
				})
			}
		}
	}
}
