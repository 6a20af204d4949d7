package mappers

import (
	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainEscrow(model *models.EscrowModel) *domain.EscrowTransaction {
	return &domain.EscrowTransaction{
		ID:          model.ID,
		PaymentTxID: model.PaymentTxID,
		PropertyID:  model.PropertyID,
		BuyerID:     model.BuyerID,
		DeveloperID: model.DeveloperID,
		CreatorID:   model.CreatorID,
		Amount:      model.Amount,
		Splits: domain.EscrowSplits{
			DeveloperAmount: model.DeveloperAmount,
			CreatorAmount:   model.CreatorAmount,
			ReachAmount:     model.ReachAmount,
		},
		Status:       domain.EscrowStatus(model.Status),
		RefundReason: model.RefundReason,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
		ReleasedAt:   model.ReleasedAt,
		RefundedAt:   model.RefundedAt,
	}
}

func ToGORMEscrow(escrow *domain.EscrowTransaction) *models.EscrowModel {
	return &models.EscrowModel{
		ID:              escrow.ID,
		PaymentTxID:     escrow.PaymentTxID,
		PropertyID:      escrow.PropertyID,
		BuyerID:         escrow.BuyerID,
		DeveloperID:     escrow.DeveloperID,
		CreatorID:       escrow.CreatorID,
		Amount:          escrow.Amount,
		DeveloperAmount: escrow.Splits.DeveloperAmount,
		CreatorAmount:   escrow.Splits.CreatorAmount,
		ReachAmount:     escrow.Splits.ReachAmount,
		Status:          string(escrow.Status),
		RefundReason:    escrow.RefundReason,
		CreatedAt:       escrow.CreatedAt,
		UpdatedAt:       escrow.UpdatedAt,
		ReleasedAt:      escrow.ReleasedAt,
		RefundedAt:      escrow.RefundedAt,
	}
}
