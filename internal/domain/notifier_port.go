package domain

import "time"

// CallbackPayload отправляется маркетплейсу на каждом переходе handover.
// Доставка best-effort: ошибки не влияют на сам переход.
type CallbackPayload struct {
	HandoverID  string    `json:"handover_id"`
	EscrowID    string    `json:"escrow_id"`
	PropertyID  string    `json:"property_id"`
	BuyerID     string    `json:"buyer_id"`
	DeveloperID string    `json:"developer_id"`
	Status      string    `json:"status"`
	Amount      float64   `json:"amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Notifier interface {
	SendHandoverCallback(payload CallbackPayload)
}
