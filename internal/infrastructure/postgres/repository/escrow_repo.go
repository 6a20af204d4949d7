package repository

import (
	"errors"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultEscrowRepository struct {
	db *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{db: db}
}

// CreatePair - эскроу и handover создаются строго вместе.
// Уникальный индекс (property, buyer) защищает от дублей при гонке событий оплаты.
func (r *DefaultEscrowRepository) CreatePair(escrow *domain.EscrowTransaction, handover *domain.Handover) error {
	escrowModel := mappers.ToGORMEscrow(escrow)
	handoverModel := mappers.ToGORMHandover(handover)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(escrowModel).Error; err != nil {
			return err
		}
		if err := tx.Create(handoverModel).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEscrowExists
		}
		return err
	}
	return nil
}

func (r *DefaultEscrowRepository) GetEscrowByID(escrowID string) (*domain.EscrowTransaction, error) {
	var escrowModel models.EscrowModel
	if err := r.db.First(&escrowModel, "id = ?", escrowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEscrowNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&escrowModel), nil
}

func (r *DefaultEscrowRepository) GetEscrowByPropertyBuyer(propertyID, buyerID string) (*domain.EscrowTransaction, error) {
	var escrowModel models.EscrowModel
	if err := r.db.First(&escrowModel, "property_id = ? AND buyer_id = ?", propertyID, buyerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEscrowNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&escrowModel), nil
}

func (r *DefaultEscrowRepository) MarkRefunded(escrowID, reason string, refundedAt time.Time) error {
	res := r.db.Model(&models.EscrowModel{}).
		Where("id = ? AND status = ?", escrowID, string(domain.EscrowHeld)).
		Updates(map[string]interface{}{
			"status":        string(domain.EscrowRefunded),
			"refund_reason": reason,
			"refunded_at":   refundedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRefundFailed
	}
	return nil
}
