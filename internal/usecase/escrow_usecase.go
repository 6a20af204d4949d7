package usecase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hausly/hausly-escrow-service/internal/domain"
	publisher "github.com/hausly/hausly-escrow-service/internal/infrastructure/kafka"
	escrowdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/escrow"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type EscrowUsecase interface {
	CreateFromPayment(input *escrowdto.CreateFromPaymentInput) (*escrowdto.EscrowOutput, error)
	GetEscrowByID(escrowID string) (*domain.EscrowTransaction, error)
	GetEscrowByPropertyBuyer(propertyID, buyerID string) (*domain.EscrowTransaction, error)
	RefundEscrow(input *escrowdto.RefundEscrowInput) error
}

type DefaultEscrowUsecase struct {
	EscrowRepo         domain.EscrowRepository
	HandoverRepo       domain.HandoverRepository
	CreatorRepo        domain.CreatorRepository
	Publisher          domain.Publisher
	Notifier           domain.Notifier
	PlatformFeePercent float64
}

func NewDefaultEscrowUsecase(
	escrowRepo domain.EscrowRepository,
	handoverRepo domain.HandoverRepository,
	creatorRepo domain.CreatorRepository,
	pub domain.Publisher,
	notifier domain.Notifier,
	platformFeePercent float64) *DefaultEscrowUsecase {

	return &DefaultEscrowUsecase{
		EscrowRepo:         escrowRepo,
		HandoverRepo:       handoverRepo,
		CreatorRepo:        creatorRepo,
		Publisher:          pub,
		Notifier:           notifier,
		PlatformFeePercent: platformFeePercent,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeSplits - распределение суммы: доля креатора по комиссии тира,
// доля платформы (reach) по конфигу, остаток застройщику. Остаток считается
// вычитанием, чтобы инвариант суммы переживал округление до центов.
func ComputeSplits(amount, creatorCommissionPercent, platformFeePercent float64) domain.EscrowSplits {
	creator := roundCents(amount * creatorCommissionPercent / 100)
	reach := roundCents(amount * platformFeePercent / 100)
	return domain.EscrowSplits{
		DeveloperAmount: roundCents(amount - creator - reach),
		CreatorAmount:   creator,
		ReachAmount:     reach,
	}
}

// CreateFromPayment обрабатывает событие успешной оплаты: снимает снапшот
// комиссии креатора на момент оплаты и создает пару эскроу+handover.
func (uc *DefaultEscrowUsecase) CreateFromPayment(input *escrowdto.CreateFromPaymentInput) (*escrowdto.EscrowOutput, error) {
	if input.PropertyID == "" || input.BuyerID == "" || input.DeveloperID == "" {
		return nil, status.Error(codes.InvalidArgument, "property, buyer and developer are required")
	}
	if input.Amount <= 0 {
		return nil, status.Error(codes.InvalidArgument, "payment amount must be positive")
	}

	// idempotency: одна пара на (property, buyer)
	if _, err := uc.EscrowRepo.GetEscrowByPropertyBuyer(input.PropertyID, input.BuyerID); err == nil {
		return nil, status.Error(codes.AlreadyExists, domain.ErrEscrowExists.Error())
	} else if !errors.Is(err, domain.ErrEscrowNotFound) {
		return nil, err
	}

	// Тир креатора на момент оплаты; без креатора или без квалификации - 0%
	creatorCommission := 0.0
	if input.CreatorID != "" {
		profile, err := uc.CreatorRepo.GetProfileByID(input.CreatorID)
		if err == nil && profile.Qualified {
			creatorCommission = profile.CommissionPercent
		} else if err != nil && !errors.Is(err, domain.ErrCreatorNotFound) {
			return nil, err
		}
	}

	handoverType := domain.HandoverType(input.HandoverType)
	if handoverType != domain.HandoverSale && handoverType != domain.HandoverRental {
		handoverType = domain.HandoverSale
	}

	splits := ComputeSplits(input.Amount, creatorCommission, uc.PlatformFeePercent)
	if math.Abs(splits.Total()-input.Amount) > 0.01 {
		return nil, domain.ErrSplitMismatch
	}

	now := time.Now()
	escrow := domain.EscrowTransaction{
		ID:          uuid.New().String(),
		PaymentTxID: input.PaymentTxID,
		PropertyID:  input.PropertyID,
		BuyerID:     input.BuyerID,
		DeveloperID: input.DeveloperID,
		CreatorID:   input.CreatorID,
		Amount:      input.Amount,
		Splits:      splits,
		Status:      domain.EscrowHeld,
		CreatedAt:   now,
	}
	handover := domain.Handover{
		ID:          uuid.New().String(),
		EscrowID:    escrow.ID,
		PropertyID:  input.PropertyID,
		BuyerID:     input.BuyerID,
		DeveloperID: input.DeveloperID,
		CreatorID:   input.CreatorID,
		Type:        handoverType,
		Status:      domain.HandoverPaymentConfirmed,
		CreatedAt:   now,
	}

	if err := uc.EscrowRepo.CreatePair(&escrow, &handover); err != nil {
		if errors.Is(err, domain.ErrEscrowExists) {
			return nil, status.Error(codes.AlreadyExists, err.Error())
		}
		return nil, err
	}

	go func(event publisher.HandoverEvent) {
		v, err := json.Marshal(event)
		if err != nil {
			return
		}
		if err := uc.Publisher.Publish(publisher.TopicHandoverEvents, domain.Message{Key: []byte(event.HandoverID), Value: v}); err != nil {
			slog.Error("failed to publish handover event", "stage", "payment_confirmed", "error", err.Error())
		}
	}(publisher.HandoverEvent{
		HandoverID:  handover.ID,
		EscrowID:    escrow.ID,
		PropertyID:  escrow.PropertyID,
		BuyerID:     escrow.BuyerID,
		DeveloperID: escrow.DeveloperID,
		Status:      string(domain.HandoverPaymentConfirmed),
		Amount:      escrow.Amount,
	})

	uc.Notifier.SendHandoverCallback(domain.CallbackPayload{
		HandoverID:  handover.ID,
		EscrowID:    escrow.ID,
		PropertyID:  escrow.PropertyID,
		BuyerID:     escrow.BuyerID,
		DeveloperID: escrow.DeveloperID,
		Status:      string(domain.HandoverPaymentConfirmed),
		Amount:      escrow.Amount,
		OccurredAt:  now,
	})

	slog.Info("escrow created", "escrow_id", escrow.ID, "property_id", escrow.PropertyID, "amount", escrow.Amount, "creator_commission", creatorCommission)

	return &escrowdto.EscrowOutput{Escrow: escrow, Handover: handover}, nil
}

func (uc *DefaultEscrowUsecase) GetEscrowByID(escrowID string) (*domain.EscrowTransaction, error) {
	escrow, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		if errors.Is(err, domain.ErrEscrowNotFound) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, err
	}
	return escrow, nil
}

func (uc *DefaultEscrowUsecase) GetEscrowByPropertyBuyer(propertyID, buyerID string) (*domain.EscrowTransaction, error) {
	escrow, err := uc.EscrowRepo.GetEscrowByPropertyBuyer(propertyID, buyerID)
	if err != nil {
		if errors.Is(err, domain.ErrEscrowNotFound) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, err
	}
	return escrow, nil
}

// RefundEscrow - админский хук для возврата средств по спору.
// Допустим только пока эскроу удерживается; парный handover закрывается.
func (uc *DefaultEscrowUsecase) RefundEscrow(input *escrowdto.RefundEscrowInput) error {
	escrow, err := uc.EscrowRepo.GetEscrowByID(input.EscrowID)
	if err != nil {
		if errors.Is(err, domain.ErrEscrowNotFound) {
			return status.Error(codes.NotFound, err.Error())
		}
		return err
	}
	if escrow.Status != domain.EscrowHeld {
		return status.Errorf(codes.FailedPrecondition, "invalid escrow status to refund: %s", escrow.Status)
	}

	now := time.Now()
	if err := uc.EscrowRepo.MarkRefunded(escrow.ID, input.Reason, now); err != nil {
		return err
	}

	handover, err := uc.HandoverRepo.GetHandoverByEscrowID(escrow.ID)
	if err != nil {
		return err
	}
	if err := uc.HandoverRepo.Abandon(handover.ID, now); err != nil {
		return err
	}

	uc.Notifier.SendHandoverCallback(domain.CallbackPayload{
		HandoverID:  handover.ID,
		EscrowID:    escrow.ID,
		PropertyID:  escrow.PropertyID,
		BuyerID:     escrow.BuyerID,
		DeveloperID: escrow.DeveloperID,
		Status:      string(domain.HandoverAbandoned),
		Amount:      escrow.Amount,
		OccurredAt:  now,
	})

	slog.Info("escrow refunded", "escrow_id", escrow.ID, "admin_id", input.AdminID, "reason", input.Reason)
	return nil
}
