package usecase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Complete - терминальный переход продажи. Требует все четыре обязательства:
// документы проверены, ключи выданы, покупатель подписал, ключи доставлены.
// Освобождение эскроу и зачисления на кошельки выполняются репозиторием
// одной транзакцией; повторный вызов на завершенном handover - no-op.
func (uc *DefaultHandoverUsecase) Complete(handoverID string) error {
	handover, err := uc.getHandover(handoverID)
	if err != nil {
		return err
	}
	if handover.Status == domain.HandoverCompleted {
		return nil
	}
	if handover.Status == domain.HandoverAbandoned {
		uc.rejected(handover, "abandoned")
		return status.Error(codes.FailedPrecondition, "handover was abandoned")
	}
	if !handover.ObligationsMet() {
		uc.rejected(handover, "obligations_not_met")
		return status.Error(codes.FailedPrecondition, domain.ErrObligationsNotMet.Error())
	}

	allowedFrom := []domain.HandoverStatus{domain.HandoverKeysDelivered}
	if !statusIn(handover.Status, allowedFrom) {
		uc.rejected(handover, "wrong_status")
		return status.Errorf(codes.FailedPrecondition, "invalid handover status to complete: %s", handover.Status)
	}

	now := time.Now()
	released, err := uc.HandoverRepo.Complete(handover.ID, allowedFrom, now, nil)
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return status.Errorf(codes.FailedPrecondition, "invalid handover status to complete: %s", handover.Status)
		}
		return err
	}
	if !released {
		// кто-то успел завершить раньше, кошельки уже пополнены
		return nil
	}

	return uc.afterCompletion(handover, now)
}

// afterCompletion - метрики и уведомления после успешного освобождения эскроу
func (uc *DefaultHandoverUsecase) afterCompletion(handover *domain.Handover, completedAt time.Time) error {
	escrow, err := uc.EscrowRepo.GetEscrowByID(handover.EscrowID)
	if err != nil {
		return err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordCompleted(string(handover.Type), escrow.Amount)
		uc.Metrics.RecordWalletCredit("developer", escrow.Splits.DeveloperAmount)
		if escrow.CreatorID != "" && escrow.Splits.CreatorAmount > 0 {
			uc.Metrics.RecordWalletCredit("creator", escrow.Splits.CreatorAmount)
		}
		uc.Metrics.RecordCompletionDuration(string(handover.Type), completedAt.Sub(handover.CreatedAt).Seconds())
	}

	uc.notifyTransition(handover, domain.HandoverCompleted, escrow.Amount, completedAt)
	slog.Info("handover completed, escrow released",
		"handover_id", handover.ID,
		"escrow_id", escrow.ID,
		"developer_amount", escrow.Splits.DeveloperAmount,
		"creator_amount", escrow.Splits.CreatorAmount,
		"reach_amount", escrow.Splits.ReachAmount,
	)
	return nil
}
