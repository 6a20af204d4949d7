package models

import "time"

type HandoverModel struct {
	ID          string `gorm:"primaryKey"`
	EscrowID    string `gorm:"uniqueIndex"`
	PropertyID  string `gorm:"index"`
	BuyerID     string `gorm:"index"`
	DeveloperID string `gorm:"index"`
	CreatorID   string
	Type        string
	Status      string `gorm:"index"`

	DocumentsURL string

	ReachSignerID  string
	ReachSignature string
	BuyerSignerID  string
	BuyerSignature string

	DocumentsSubmittedAt *time.Time
	DocumentsVerifiedAt  *time.Time
	KeysReleasedAt       *time.Time
	ReachSignedAt        *time.Time
	BuyerSignedAt        *time.Time
	KeysDeliveredAt      *time.Time
	CompletedAt          *time.Time

	Escrow EscrowModel `gorm:"foreignKey:EscrowID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
