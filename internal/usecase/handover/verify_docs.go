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

// VerifyDocuments - доверенный посредник (админ) подтверждает документы
func (uc *DefaultHandoverUsecase) VerifyDocuments(input *handoverdto.VerifyDocumentsInput) error {
	handover, err := uc.getHandover(input.HandoverID)
	if err != nil {
		return err
	}

	allowedFrom := []domain.HandoverStatus{domain.HandoverDocsSubmitted}
	if !statusIn(handover.Status, allowedFrom) {
		uc.rejected(handover, "wrong_status")
		return status.Errorf(codes.FailedPrecondition, "invalid handover status to verify documents: %s", handover.Status)
	}

	now := time.Now()
	err = uc.HandoverRepo.TransitionStatus(handover.ID, allowedFrom, domain.HandoverDocsVerified, map[string]interface{}{
		"documents_verified_at": now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return status.Errorf(codes.FailedPrecondition, "invalid handover status to verify documents: %s", handover.Status)
		}
		return err
	}

	uc.notifyTransition(handover, domain.HandoverDocsVerified, 0, now)
	slog.Info("handover documents verified", "handover_id", handover.ID, "admin_id", input.AdminID)
	return nil
}
