package models

import "time"

type WalletModel struct {
	UserID    string `gorm:"primaryKey"`
	Available float64
	UpdatedAt time.Time
}
