package mappers

import (
	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainHandover(model *models.HandoverModel) *domain.Handover {
	return &domain.Handover{
		ID:          model.ID,
		EscrowID:    model.EscrowID,
		PropertyID:  model.PropertyID,
		BuyerID:     model.BuyerID,
		DeveloperID: model.DeveloperID,
		CreatorID:   model.CreatorID,
		Type:        domain.HandoverType(model.Type),
		Status:      domain.HandoverStatus(model.Status),

		DocumentsURL: model.DocumentsURL,

		ReachSignerID:  model.ReachSignerID,
		ReachSignature: model.ReachSignature,
		BuyerSignerID:  model.BuyerSignerID,
		BuyerSignature: model.BuyerSignature,

		DocumentsSubmittedAt: model.DocumentsSubmittedAt,
		DocumentsVerifiedAt:  model.DocumentsVerifiedAt,
		KeysReleasedAt:       model.KeysReleasedAt,
		ReachSignedAt:        model.ReachSignedAt,
		BuyerSignedAt:        model.BuyerSignedAt,
		KeysDeliveredAt:      model.KeysDeliveredAt,
		CompletedAt:          model.CompletedAt,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMHandover(handover *domain.Handover) *models.HandoverModel {
	return &models.HandoverModel{
		ID:          handover.ID,
		EscrowID:    handover.EscrowID,
		PropertyID:  handover.PropertyID,
		BuyerID:     handover.BuyerID,
		DeveloperID: handover.DeveloperID,
		CreatorID:   handover.CreatorID,
		Type:        string(handover.Type),
		Status:      string(handover.Status),

		DocumentsURL: handover.DocumentsURL,

		ReachSignerID:  handover.ReachSignerID,
		ReachSignature: handover.ReachSignature,
		BuyerSignerID:  handover.BuyerSignerID,
		BuyerSignature: handover.BuyerSignature,

		DocumentsSubmittedAt: handover.DocumentsSubmittedAt,
		DocumentsVerifiedAt:  handover.DocumentsVerifiedAt,
		KeysReleasedAt:       handover.KeysReleasedAt,
		ReachSignedAt:        handover.ReachSignedAt,
		BuyerSignedAt:        handover.BuyerSignedAt,
		KeysDeliveredAt:      handover.KeysDeliveredAt,
		CompletedAt:          handover.CompletedAt,

		CreatedAt: handover.CreatedAt,
		UpdatedAt: handover.UpdatedAt,
	}
}
