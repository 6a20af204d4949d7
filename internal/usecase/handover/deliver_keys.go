package usecase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	handoverdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/handover"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ConfirmKeysDelivered - финальное физическое подтверждение получения ключей
func (uc *DefaultHandoverUsecase) ConfirmKeysDelivered(input *handoverdto.ConfirmKeysDeliveredInput) error {
	handover, err := uc.getHandover(input.HandoverID)
	if err != nil {
		return err
	}
	if input.BuyerID != handover.BuyerID {
		uc.rejected(handover, "wrong_actor")
		return status.Error(codes.PermissionDenied, "only the buyer may confirm key delivery")
	}

	allowedFrom := []domain.HandoverStatus{domain.HandoverBuyerSigned}
	if !statusIn(handover.Status, allowedFrom) {
		uc.rejected(handover, "wrong_status")
		return status.Errorf(codes.FailedPrecondition, "invalid handover status to confirm key delivery: %s", handover.Status)
	}

	now := time.Now()
	err = uc.HandoverRepo.TransitionStatus(handover.ID, allowedFrom, domain.HandoverKeysDelivered, map[string]interface{}{
		"keys_delivered_at": now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return status.Errorf(codes.FailedPrecondition, "invalid handover status to confirm key delivery: %s", handover.Status)
		}
		return err
	}

	uc.notifyTransition(handover, domain.HandoverKeysDelivered, 0, now)
	slog.Info("handover keys delivered", "handover_id", handover.ID, "buyer_id", input.BuyerID)
	return nil
}
