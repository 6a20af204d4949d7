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

// ReleaseKeys - застройщик подтверждает передачу физических ключей
func (uc *DefaultHandoverUsecase) ReleaseKeys(input *handoverdto.ReleaseKeysInput) error {
	handover, err := uc.getHandover(input.HandoverID)
	if err != nil {
		return err
	}
	if input.DeveloperID != handover.DeveloperID {
		uc.rejected(handover, "wrong_actor")
		return status.Error(codes.PermissionDenied, "only the property developer may release keys")
	}

	allowedFrom := []domain.HandoverStatus{domain.HandoverDocsVerified}
	if !statusIn(handover.Status, allowedFrom) {
		uc.rejected(handover, "wrong_status")
		return status.Errorf(codes.FailedPrecondition, "invalid handover status to release keys: %s", handover.Status)
	}

	now := time.Now()
	err = uc.HandoverRepo.TransitionStatus(handover.ID, allowedFrom, domain.HandoverKeysReleased, map[string]interface{}{
		"keys_released_at": now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return status.Errorf(codes.FailedPrecondition, "invalid handover status to release keys: %s", handover.Status)
		}
		return err
	}

	uc.notifyTransition(handover, domain.HandoverKeysReleased, 0, now)
	slog.Info("handover keys released", "handover_id", handover.ID, "developer_id", input.DeveloperID)
	return nil
}
