package usecase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	handoverdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/handover"
	"github.com/jaevor/go-nanoid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SignAsReach - контрподпись посредника (reach), открывает подпись покупателя
func (uc *DefaultHandoverUsecase) SignAsReach(input *handoverdto.SignInput) error {
	if input.Signature == "" || input.SignerID == "" {
		return status.Error(codes.InvalidArgument, "signer and signature are required")
	}

	handover, err := uc.getHandover(input.HandoverID)
	if err != nil {
		return err
	}

	allowedFrom := []domain.HandoverStatus{domain.HandoverKeysReleased}
	if !statusIn(handover.Status, allowedFrom) {
		uc.rejected(handover, "wrong_status")
		return status.Errorf(codes.FailedPrecondition, "invalid handover status for intermediary signature: %s", handover.Status)
	}

	now := time.Now()
	err = uc.HandoverRepo.TransitionStatus(handover.ID, allowedFrom, domain.HandoverReachSigned, map[string]interface{}{
		"reach_signed_at":  now,
		"reach_signer_id":  input.SignerID,
		"reach_signature":  input.Signature,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return status.Errorf(codes.FailedPrecondition, "invalid handover status for intermediary signature: %s", handover.Status)
		}
		return err
	}

	uc.notifyTransition(handover, domain.HandoverReachSigned, 0, now)
	slog.Info("handover signed by intermediary", "handover_id", handover.ID, "signer_id", input.SignerID, "receipt_id", signatureReceiptID())
	return nil
}

// SignAsBuyer - подпись покупателя, следует строго за подписью посредника
func (uc *DefaultHandoverUsecase) SignAsBuyer(input *handoverdto.SignInput) error {
	if input.Signature == "" || input.SignerID == "" {
		return status.Error(codes.InvalidArgument, "signer and signature are required")
	}

	handover, err := uc.getHandover(input.HandoverID)
	if err != nil {
		return err
	}
	if input.SignerID != handover.BuyerID {
		uc.rejected(handover, "wrong_actor")
		return status.Error(codes.PermissionDenied, "only the buyer may sign the handover")
	}

	allowedFrom := []domain.HandoverStatus{domain.HandoverReachSigned}
	if !statusIn(handover.Status, allowedFrom) {
		uc.rejected(handover, "wrong_status")
		return status.Errorf(codes.FailedPrecondition, "invalid handover status for buyer signature: %s", handover.Status)
	}

	now := time.Now()
	err = uc.HandoverRepo.TransitionStatus(handover.ID, allowedFrom, domain.HandoverBuyerSigned, map[string]interface{}{
		"buyer_signed_at":  now,
		"buyer_signer_id":  input.SignerID,
		"buyer_signature":  input.Signature,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return status.Errorf(codes.FailedPrecondition, "invalid handover status for buyer signature: %s", handover.Status)
		}
		return err
	}

	uc.notifyTransition(handover, domain.HandoverBuyerSigned, 0, now)
	slog.Info("handover signed by buyer", "handover_id", handover.ID, "signer_id", input.SignerID, "receipt_id", signatureReceiptID())
	return nil
}

// Квитанция подписи для аудита в логах
func signatureReceiptID() string {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return ""
	}
	return idGenerator()
}
