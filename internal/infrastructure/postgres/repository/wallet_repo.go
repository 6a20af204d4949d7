package repository

import (
	"errors"
	"time"

	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultWalletRepository struct {
	db *gorm.DB
}

func NewDefaultWalletRepository(db *gorm.DB) *DefaultWalletRepository {
	return &DefaultWalletRepository{db: db}
}

// creditWallet - атомарный инкремент без read-modify-write, lost update
// при конкурентных зачислениях невозможен. Кошелек создается при первом зачислении.
func creditWallet(tx *gorm.DB, userID string, amount float64, now time.Time) error {
	res := tx.Model(&models.WalletModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"available":  gorm.Expr("available + ?", amount),
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	err := tx.Create(&models.WalletModel{
		UserID:    userID,
		Available: amount,
		UpdatedAt: now,
	}).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		// кошелек создан конкурентно - повторяем инкремент
		return tx.Model(&models.WalletModel{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"available":  gorm.Expr("available + ?", amount),
				"updated_at": now,
			}).Error
	}
	return err
}

func (r *DefaultWalletRepository) Credit(userID string, amount float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return creditWallet(tx, userID, amount, time.Now())
	})
}

func (r *DefaultWalletRepository) GetBalance(userID string) (float64, error) {
	var walletModel models.WalletModel
	if err := r.db.First(&walletModel, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return walletModel.Available, nil
}
