package publisher

// PaymentEvent приходит от платежного сервиса после успешной оплаты.
// На каждое событие создается ровно одна пара эскроу+handover.
type PaymentEvent struct {
	TransactionID string  `json:"transaction_id"`
	PropertyID    string  `json:"property_id"`
	BuyerID       string  `json:"buyer_id"`
	DeveloperID   string  `json:"developer_id"`
	CreatorID     string  `json:"creator_id"`
	Amount        float64 `json:"amount"`
	HandoverType  string  `json:"handover_type"`
}
