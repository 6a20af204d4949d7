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

// SubmitDocuments - застройщик загружает документы на объект
func (uc *DefaultHandoverUsecase) SubmitDocuments(input *handoverdto.SubmitDocumentsInput) error {
	if input.DocumentsURL == "" {
		return status.Error(codes.InvalidArgument, "documents url is required")
	}

	handover, err := uc.getHandover(input.HandoverID)
	if err != nil {
		return err
	}
	if handover.Type != domain.HandoverSale {
		uc.rejected(handover, "wrong_type")
		return status.Error(codes.FailedPrecondition, "document submission applies to sale handovers only")
	}
	if input.DeveloperID != handover.DeveloperID {
		uc.rejected(handover, "wrong_actor")
		return status.Error(codes.PermissionDenied, "only the property developer may submit documents")
	}

	allowedFrom := []domain.HandoverStatus{domain.HandoverPaymentConfirmed, domain.HandoverPendingDeveloperDocs}
	if !statusIn(handover.Status, allowedFrom) {
		uc.rejected(handover, "wrong_status")
		return status.Error(codes.FailedPrecondition, "handover not in a state that allows document submission")
	}

	now := time.Now()
	err = uc.HandoverRepo.TransitionStatus(handover.ID, allowedFrom, domain.HandoverDocsSubmitted, map[string]interface{}{
		"documents_submitted_at": now,
		"documents_url":          input.DocumentsURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return status.Error(codes.FailedPrecondition, "handover not in a state that allows document submission")
		}
		return err
	}

	uc.notifyTransition(handover, domain.HandoverDocsSubmitted, 0, now)
	slog.Info("handover documents submitted", "handover_id", handover.ID, "developer_id", input.DeveloperID)
	return nil
}
