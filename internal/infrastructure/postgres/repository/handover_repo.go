package repository

import (
	"errors"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/domain"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultHandoverRepository struct {
	db *gorm.DB
}

func NewDefaultHandoverRepository(db *gorm.DB) *DefaultHandoverRepository {
	return &DefaultHandoverRepository{db: db}
}

func (r *DefaultHandoverRepository) GetHandoverByID(handoverID string) (*domain.Handover, error) {
	var handoverModel models.HandoverModel
	if err := r.db.First(&handoverModel, "id = ?", handoverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHandoverNotFound
		}
		return nil, err
	}
	return mappers.ToDomainHandover(&handoverModel), nil
}

func (r *DefaultHandoverRepository) GetHandoverByEscrowID(escrowID string) (*domain.Handover, error) {
	var handoverModel models.HandoverModel
	if err := r.db.First(&handoverModel, "escrow_id = ?", escrowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHandoverNotFound
		}
		return nil, err
	}
	return mappers.ToDomainHandover(&handoverModel), nil
}

func statusStrings(statuses []domain.HandoverStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// TransitionStatus - compare-and-swap по текущему статусу. Гонка двух акторов
// решается на уровне БД: проигравший получает ErrStatusConflict.
func (r *DefaultHandoverRepository) TransitionStatus(handoverID string, allowedFrom []domain.HandoverStatus, to domain.HandoverStatus, updates map[string]interface{}) error {
	values := map[string]interface{}{"status": string(to)}
	for k, v := range updates {
		values[k] = v
	}

	res := r.db.Model(&models.HandoverModel{}).
		Where("id = ? AND status IN ?", handoverID, statusStrings(allowedFrom)).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStatusConflict
	}
	return nil
}

// Complete - критическая секция завершения: handover -> COMPLETED,
// эскроу HELD -> RELEASED, зачисления на кошельки. Все в одной транзакции,
// частичное применение невозможно. Кошельки пополняются только если именно
// этот вызов перевел эскроу в RELEASED - повторное завершение не удваивает
// зачисления.
func (r *DefaultHandoverRepository) Complete(handoverID string, allowedFrom []domain.HandoverStatus, now time.Time, extraUpdates map[string]interface{}) (bool, error) {
	released := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		values := map[string]interface{}{
			"status":       string(domain.HandoverCompleted),
			"completed_at": now,
		}
		for k, v := range extraUpdates {
			values[k] = v
		}

		res := tx.Model(&models.HandoverModel{}).
			Where("id = ? AND status IN ?", handoverID, statusStrings(allowedFrom)).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current models.HandoverModel
			if err := tx.First(&current, "id = ?", handoverID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrHandoverNotFound
				}
				return err
			}
			if current.Status == string(domain.HandoverCompleted) {
				// уже завершен - идемпотентный no-op
				return nil
			}
			return domain.ErrStatusConflict
		}

		var handoverModel models.HandoverModel
		if err := tx.First(&handoverModel, "id = ?", handoverID).Error; err != nil {
			return err
		}

		escrowRes := tx.Model(&models.EscrowModel{}).
			Where("id = ? AND status = ?", handoverModel.EscrowID, string(domain.EscrowHeld)).
			Updates(map[string]interface{}{
				"status":      string(domain.EscrowReleased),
				"released_at": now,
			})
		if escrowRes.Error != nil {
			return escrowRes.Error
		}
		if escrowRes.RowsAffected == 0 {
			// эскроу уже освобожден или возвращен - зачислений не повторяем
			return nil
		}

		var escrowModel models.EscrowModel
		if err := tx.First(&escrowModel, "id = ?", handoverModel.EscrowID).Error; err != nil {
			return err
		}

		if err := creditWallet(tx, escrowModel.DeveloperID, escrowModel.DeveloperAmount, now); err != nil {
			return err
		}
		if escrowModel.CreatorID != "" && escrowModel.CreatorAmount > 0 {
			if err := creditWallet(tx, escrowModel.CreatorID, escrowModel.CreatorAmount, now); err != nil {
				return err
			}
		}

		released = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return released, nil
}

func (r *DefaultHandoverRepository) Abandon(handoverID string, now time.Time) error {
	res := r.db.Model(&models.HandoverModel{}).
		Where("id = ? AND status NOT IN ?", handoverID, []string{
			string(domain.HandoverCompleted),
			string(domain.HandoverAbandoned),
		}).
		Updates(map[string]interface{}{"status": string(domain.HandoverAbandoned)})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStatusConflict
	}
	return nil
}

func (r *DefaultHandoverRepository) applyFilters(query *gorm.DB, filters domain.HandoverFilters) *gorm.DB {
	if len(filters.Statuses) > 0 {
		query = query.Where("status IN ?", filters.Statuses)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}
	return query
}

func (r *DefaultHandoverRepository) listHandovers(column, id string, page, limit int64, filters domain.HandoverFilters) ([]*domain.Handover, int64, error) {
	query := r.db.Model(&models.HandoverModel{}).Where(column+" = ?", id)
	query = r.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var handoverModels []models.HandoverModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&handoverModels).Error; err != nil {
		return nil, 0, err
	}

	handovers := make([]*domain.Handover, len(handoverModels))
	for i, handoverModel := range handoverModels {
		handovers[i] = mappers.ToDomainHandover(&handoverModel)
	}
	return handovers, total, nil
}

func (r *DefaultHandoverRepository) GetHandoversByDeveloperID(developerID string, page, limit int64, filters domain.HandoverFilters) ([]*domain.Handover, int64, error) {
	return r.listHandovers("developer_id", developerID, page, limit, filters)
}

func (r *DefaultHandoverRepository) GetHandoversByBuyerID(buyerID string, page, limit int64, filters domain.HandoverFilters) ([]*domain.Handover, int64, error) {
	return r.listHandovers("buyer_id", buyerID, page, limit, filters)
}

func (r *DefaultHandoverRepository) GetHandoverStatistics(developerID string, dateFrom, dateTo time.Time) (*domain.HandoverStatistics, error) {
	stats := domain.HandoverStatistics{}

	base := func() *gorm.DB {
		query := r.db.Model(&models.HandoverModel{}).Where("handover_models.developer_id = ?", developerID)
		if !dateFrom.IsZero() {
			query = query.Where("handover_models.created_at >= ?", dateFrom)
		}
		if !dateTo.IsZero() {
			query = query.Where("handover_models.created_at <= ?", dateTo)
		}
		return query
	}

	if err := base().Count(&stats.TotalHandovers).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", string(domain.HandoverCompleted)).Count(&stats.CompletedHandovers).Error; err != nil {
		return nil, err
	}
	if err := base().
		Joins("JOIN escrow_models ON escrow_models.id = handover_models.escrow_id").
		Where("handover_models.status = ?", string(domain.HandoverCompleted)).
		Select("COALESCE(SUM(escrow_models.amount), 0)").
		Scan(&stats.ReleasedAmount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *DefaultHandoverRepository) FindStaleAwaitingDocs(cutoff time.Time) ([]*domain.Handover, error) {
	var handoverModels []models.HandoverModel
	if err := r.db.Model(&models.HandoverModel{}).
		Where("type = ?", string(domain.HandoverSale)).
		Where("status IN ?", []string{
			string(domain.HandoverPaymentConfirmed),
			string(domain.HandoverPendingDeveloperDocs),
		}).
		Where("created_at < ?", cutoff).
		Find(&handoverModels).Error; err != nil {
		return nil, err
	}

	handovers := make([]*domain.Handover, len(handoverModels))
	for i, handoverModel := range handoverModels {
		handovers[i] = mappers.ToDomainHandover(&handoverModel)
	}
	return handovers, nil
}
