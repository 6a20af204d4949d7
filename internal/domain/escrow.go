package domain

import "time"

type EscrowStatus string

const (
	EscrowHeld     EscrowStatus = "HELD"
	EscrowReleased EscrowStatus = "RELEASED"
	EscrowRefunded EscrowStatus = "REFUNDED"
)

// EscrowSplits - распределение суммы сделки между участниками.
// Инвариант: Developer + Creator + Reach == Amount эскроу.
type EscrowSplits struct {
	DeveloperAmount float64
	CreatorAmount   float64
	ReachAmount     float64
}

func (s EscrowSplits) Total() float64 {
	return s.DeveloperAmount + s.CreatorAmount + s.ReachAmount
}

type EscrowTransaction struct {
	ID            string
	PaymentTxID   string
	PropertyID    string
	BuyerID       string
	DeveloperID   string
	CreatorID     string
	Amount        float64
	Splits        EscrowSplits
	Status        EscrowStatus
	RefundReason  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ReleasedAt    *time.Time
	RefundedAt    *time.Time
}

type EscrowRepository interface {
	// CreatePair создает эскроу и связанный handover одной транзакцией
	CreatePair(escrow *EscrowTransaction, handover *Handover) error
	GetEscrowByID(escrowID string) (*EscrowTransaction, error)
	GetEscrowByPropertyBuyer(propertyID, buyerID string) (*EscrowTransaction, error)
	MarkRefunded(escrowID, reason string, refundedAt time.Time) error
}
