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

// Двухсторонний сценарий для аренды: без цепочки документов и подписей.
// Застройщик подтверждает передачу, покупатель - получение, после чего
// handover завершается с теми же зачислениями, что и при продаже.

func (uc *DefaultHandoverUsecase) ConfirmDelivery(input *handoverdto.ConfirmDeliveryInput) error {
	handover, err := uc.getHandover(input.HandoverID)
	if err != nil {
		return err
	}
	if handover.Type != domain.HandoverRental {
		uc.rejected(handover, "wrong_type")
		return status.Error(codes.FailedPrecondition, "delivery confirmation applies to rental handovers only")
	}
	if input.DeveloperID != handover.DeveloperID {
		uc.rejected(handover, "wrong_actor")
		return status.Error(codes.PermissionDenied, "only the property developer may confirm delivery")
	}

	allowedFrom := []domain.HandoverStatus{domain.HandoverPaymentConfirmed}
	if !statusIn(handover.Status, allowedFrom) {
		uc.rejected(handover, "wrong_status")
		return status.Errorf(codes.FailedPrecondition, "invalid handover status to confirm delivery: %s", handover.Status)
	}

	now := time.Now()
	err = uc.HandoverRepo.TransitionStatus(handover.ID, allowedFrom, domain.HandoverAwaitingBuyerConfirmation, map[string]interface{}{
		"keys_released_at": now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return status.Errorf(codes.FailedPrecondition, "invalid handover status to confirm delivery: %s", handover.Status)
		}
		return err
	}

	uc.notifyTransition(handover, domain.HandoverAwaitingBuyerConfirmation, 0, now)
	slog.Info("rental delivery confirmed", "handover_id", handover.ID, "developer_id", input.DeveloperID)
	return nil
}

func (uc *DefaultHandoverUsecase) ConfirmReceipt(input *handoverdto.ConfirmReceiptInput) error {
	handover, err := uc.getHandover(input.HandoverID)
	if err != nil {
		return err
	}
	if handover.Type != domain.HandoverRental {
		uc.rejected(handover, "wrong_type")
		return status.Error(codes.FailedPrecondition, "receipt confirmation applies to rental handovers only")
	}
	if input.BuyerID != handover.BuyerID {
		uc.rejected(handover, "wrong_actor")
		return status.Error(codes.PermissionDenied, "only the buyer may confirm receipt")
	}
	if handover.Status == domain.HandoverCompleted {
		return nil
	}

	allowedFrom := []domain.HandoverStatus{domain.HandoverAwaitingBuyerConfirmation}
	if !statusIn(handover.Status, allowedFrom) {
		uc.rejected(handover, "wrong_status")
		return status.Errorf(codes.FailedPrecondition, "invalid handover status to confirm receipt: %s", handover.Status)
	}

	now := time.Now()
	released, err := uc.HandoverRepo.Complete(handover.ID, allowedFrom, now, map[string]interface{}{
		"keys_delivered_at": now,
		"buyer_signed_at":   now,
		"buyer_signer_id":   input.BuyerID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return status.Errorf(codes.FailedPrecondition, "invalid handover status to confirm receipt: %s", handover.Status)
		}
		return err
	}
	if !released {
		return nil
	}

	return uc.afterCompletion(handover, now)
}
