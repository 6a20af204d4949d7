package models

import "time"

type EscrowModel struct {
	ID          string `gorm:"primaryKey"`
	PaymentTxID string
	PropertyID  string `gorm:"index:idx_escrow_property_buyer,unique"`
	BuyerID     string `gorm:"index:idx_escrow_property_buyer,unique"`
	DeveloperID string `gorm:"index"`
	CreatorID   string

	Amount          float64
	DeveloperAmount float64
	CreatorAmount   float64
	ReachAmount     float64

	Status       string `gorm:"index"`
	RefundReason string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReleasedAt *time.Time
	RefundedAt *time.Time
}
