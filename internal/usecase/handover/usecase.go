package usecase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	publisher "github.com/hausly/hausly-escrow-service/internal/infrastructure/kafka"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/metrics"
	handoverdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/handover"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type HandoverUsecase interface {
	SubmitDocuments(input *handoverdto.SubmitDocumentsInput) error
	VerifyDocuments(input *handoverdto.VerifyDocumentsInput) error
	ReleaseKeys(input *handoverdto.ReleaseKeysInput) error
	SignAsReach(input *handoverdto.SignInput) error
	SignAsBuyer(input *handoverdto.SignInput) error
	ConfirmKeysDelivered(input *handoverdto.ConfirmKeysDeliveredInput) error
	Complete(handoverID string) error

	// Двухсторонний сценарий для аренды
	ConfirmDelivery(input *handoverdto.ConfirmDeliveryInput) error
	ConfirmReceipt(input *handoverdto.ConfirmReceiptInput) error

	GetHandoverByID(handoverID string) (*domain.Handover, error)
	GetHandoversByDeveloperID(developerID string, input *handoverdto.GetHandoversInput) (*handoverdto.GetHandoversOutput, error)
	GetHandoversByBuyerID(buyerID string, input *handoverdto.GetHandoversInput) (*handoverdto.GetHandoversOutput, error)
	GetHandoverStatistics(developerID string, dateFrom, dateTo time.Time) (*domain.HandoverStatistics, error)
}

type DefaultHandoverUsecase struct {
	HandoverRepo domain.HandoverRepository
	EscrowRepo   domain.EscrowRepository
	Publisher    domain.Publisher
	Notifier     domain.Notifier
	Metrics      *metrics.HandoverMetrics
}

func NewDefaultHandoverUsecase(
	handoverRepo domain.HandoverRepository,
	escrowRepo domain.EscrowRepository,
	pub domain.Publisher,
	notifier domain.Notifier,
	handoverMetrics *metrics.HandoverMetrics) *DefaultHandoverUsecase {

	return &DefaultHandoverUsecase{
		HandoverRepo: handoverRepo,
		EscrowRepo:   escrowRepo,
		Publisher:    pub,
		Notifier:     notifier,
		Metrics:      handoverMetrics,
	}
}

func (uc *DefaultHandoverUsecase) getHandover(handoverID string) (*domain.Handover, error) {
	handover, err := uc.HandoverRepo.GetHandoverByID(handoverID)
	if err != nil {
		if errors.Is(err, domain.ErrHandoverNotFound) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, err
	}
	return handover, nil
}

// rejected учитывает отклоненный переход в метриках
func (uc *DefaultHandoverUsecase) rejected(handover *domain.Handover, reason string) {
	if uc.Metrics != nil {
		uc.Metrics.RecordRejected(string(handover.Type), reason)
	}
}

func statusIn(s domain.HandoverStatus, allowed []domain.HandoverStatus) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// notifyTransition - kafka событие + HTTP callback, best-effort.
// Ошибки доставки не откатывают сам переход.
func (uc *DefaultHandoverUsecase) notifyTransition(handover *domain.Handover, newStatus domain.HandoverStatus, amount float64, at time.Time) {
	go func(event publisher.HandoverEvent) {
		v, err := json.Marshal(event)
		if err != nil {
			return
		}
		if err := uc.Publisher.Publish(publisher.TopicHandoverEvents, domain.Message{Key: []byte(event.HandoverID), Value: v}); err != nil {
			slog.Error("failed to publish handover event", "status", event.Status, "error", err.Error())
		}
	}(publisher.HandoverEvent{
		HandoverID:  handover.ID,
		EscrowID:    handover.EscrowID,
		PropertyID:  handover.PropertyID,
		BuyerID:     handover.BuyerID,
		DeveloperID: handover.DeveloperID,
		Status:      string(newStatus),
		Amount:      amount,
	})

	uc.Notifier.SendHandoverCallback(domain.CallbackPayload{
		HandoverID:  handover.ID,
		EscrowID:    handover.EscrowID,
		PropertyID:  handover.PropertyID,
		BuyerID:     handover.BuyerID,
		DeveloperID: handover.DeveloperID,
		Status:      string(newStatus),
		Amount:      amount,
		OccurredAt:  at,
	})

	if uc.Metrics != nil {
		uc.Metrics.RecordTransition(string(handover.Type), string(newStatus))
	}
}
